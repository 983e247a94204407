package promotions

import (
	"sort"
	"strings"
	"sync"
	"time"

	"flyviet/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fixtureStore serves a fixed promotion catalog from memory. Reads behave
// like the postgres store; catalog mutations are rejected except for usage
// counting, which is tracked in memory for the life of the process.
type fixtureStore struct {
	mu         sync.RWMutex
	promotions map[uuid.UUID]*Promotion
}

func NewFixtureStore() Store {
	now := time.Now()
	catalog := []*Promotion{
		{
			ID:            uuid.New(),
			Code:          "SUMMER25",
			Description:   "Giảm 25% cho mùa hè",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 25,
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 2, 0),
			UsageLimit:    100,
			Active:        true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Code:          "WELCOME10",
			Description:   "Giảm 10% cho khách hàng mới",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 10,
			ValidFrom:     now.AddDate(0, -6, 0),
			ValidUntil:    now.AddDate(0, 6, 0),
			Active:        true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Code:          "FLY200K",
			Description:   "Giảm 200.000đ cho mọi chuyến bay",
			DiscountType:  pricing.DiscountFixed,
			DiscountValue: 200000,
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 1, 0),
			UsageLimit:    50,
			Active:        true,
			CreatedAt:     now,
		},
		{
			ID:            uuid.New(),
			Code:          "EXPIRED20",
			Description:   "Khuyến mãi đã hết hạn",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 20,
			ValidFrom:     now.AddDate(0, -3, 0),
			ValidUntil:    now.AddDate(0, -1, 0),
			Active:        true,
			CreatedAt:     now,
		},
	}

	store := &fixtureStore{promotions: make(map[uuid.UUID]*Promotion, len(catalog))}
	for _, promotion := range catalog {
		store.promotions[promotion.ID] = promotion
	}
	return store
}

func (s *fixtureStore) GetByID(id uuid.UUID) (*Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promotion, ok := s.promotions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *promotion
	return &copied, nil
}

func (s *fixtureStore) GetByCode(code string) (*Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, promotion := range s.promotions {
		if strings.EqualFold(promotion.Code, code) {
			copied := *promotion
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fixtureStore) GetAll(query PromotionListQuery) ([]Promotion, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Promotion
	for _, promotion := range s.promotions {
		if query.Search != "" {
			needle := strings.ToLower(query.Search)
			if !strings.Contains(strings.ToLower(promotion.Code), needle) &&
				!strings.Contains(strings.ToLower(promotion.Description), needle) {
				continue
			}
		}
		if query.Active != nil && promotion.Active != *query.Active {
			continue
		}
		matched = append(matched, *promotion)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Code < matched[j].Code
	})

	totalCount := int64(len(matched))

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	start := (query.Page - 1) * query.Limit
	if start >= len(matched) {
		return []Promotion{}, totalCount, nil
	}
	end := start + query.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], totalCount, nil
}

func (s *fixtureStore) Create(promotion *Promotion) error {
	return ErrFixtureReadOnly
}

func (s *fixtureStore) Update(id uuid.UUID, updates map[string]interface{}) (*Promotion, error) {
	return nil, ErrFixtureReadOnly
}

func (s *fixtureStore) Delete(id uuid.UUID) error {
	return ErrFixtureReadOnly
}

func (s *fixtureStore) IncrementUsage(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	promotion, ok := s.promotions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if promotion.UsageLimit > 0 && promotion.UsedCount >= promotion.UsageLimit {
		return ErrPromotionDepleted
	}
	promotion.UsedCount++
	return nil
}
