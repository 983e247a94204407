package promotions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"flyviet/internal/pricing"
	"flyviet/internal/shared/constants"
	"flyviet/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	// Validate checks a code against its window and usage limit and reports
	// the discount for the given total. It never mutates usage counts;
	// ConsumeCode does that at booking time.
	Validate(ctx context.Context, code string, total float64) (*ValidateResponse, error)

	// ConsumeCode records one use of a code. Called once per created booking.
	ConsumeCode(ctx context.Context, code string) error

	// Admin back-office
	CreatePromotion(req CreatePromotionRequest) (*PromotionResponse, error)
	UpdatePromotion(id uuid.UUID, req UpdatePromotionRequest) (*PromotionResponse, error)
	DeletePromotion(id uuid.UUID) error
	GetPromotion(id uuid.UUID) (*PromotionResponse, error)
	GetAllPromotions(query PromotionListQuery) (*PaginatedPromotions, error)
}

type service struct {
	store        Store
	cacheService cache.Service
	now          func() time.Time
}

func NewService(store Store) Service {
	return &service{
		store: store,
		now:   time.Now,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) Validate(ctx context.Context, code string, total float64) (*ValidateResponse, error) {
	promotion, err := s.getByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !promotion.Active {
		return nil, ErrPromotionInvalid
	}
	if now.Before(promotion.ValidFrom) || now.After(promotion.ValidUntil) {
		return nil, ErrPromotionExpired
	}
	if promotion.UsageLimit > 0 && promotion.UsedCount >= promotion.UsageLimit {
		return nil, ErrPromotionDepleted
	}

	discount := promotion.Discount().Amount(total)

	return &ValidateResponse{
		Code:            promotion.Code,
		DiscountType:    promotion.DiscountType,
		DiscountValue:   promotion.DiscountValue,
		DiscountAmount:  discount,
		DiscountedTotal: total - discount,
	}, nil
}

func (s *service) ConsumeCode(ctx context.Context, code string) error {
	promotion, err := s.getByCode(ctx, code)
	if err != nil {
		return err
	}

	if err := s.store.IncrementUsage(promotion.ID); err != nil {
		return fmt.Errorf("failed to consume promotion %s: %w", promotion.Code, err)
	}

	s.invalidatePromotionCache(ctx)
	return nil
}

func (s *service) getByCode(ctx context.Context, code string) (*Promotion, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrPromotionInvalid
	}

	key := constants.BuildPromotionKey(code)

	if s.cacheService != nil {
		var cached Promotion
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	promotion, err := s.store.GetByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to look up promotion: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, promotion, constants.TTL_PROMOTION_DETAIL)
	}

	return promotion, nil
}

func (s *service) CreatePromotion(req CreatePromotionRequest) (*PromotionResponse, error) {
	if !req.ValidUntil.After(req.ValidFrom) {
		return nil, fmt.Errorf("valid_until must be after valid_from")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if existing, err := s.store.GetByCode(code); err == nil && existing != nil {
		return nil, ErrDuplicateCode
	}

	promotion := &Promotion{
		Code:          code,
		Description:   req.Description,
		DiscountType:  pricing.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
		Active:        true,
	}

	if promotion.DiscountType == pricing.DiscountPercent && promotion.DiscountValue > 100 {
		return nil, fmt.Errorf("percent discount cannot exceed 100")
	}

	if err := s.store.Create(promotion); err != nil {
		return nil, fmt.Errorf("failed to create promotion: %w", err)
	}

	s.invalidatePromotionCache(context.Background())

	resp := promotion.ToResponse()
	return &resp, nil
}

func (s *service) UpdatePromotion(id uuid.UUID, req UpdatePromotionRequest) (*PromotionResponse, error) {
	updates := make(map[string]interface{})

	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DiscountType != nil {
		updates["discount_type"] = *req.DiscountType
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.ValidFrom != nil {
		updates["valid_from"] = *req.ValidFrom
	}
	if req.ValidUntil != nil {
		updates["valid_until"] = *req.ValidUntil
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	promotion, err := s.store.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to update promotion: %w", err)
	}

	s.invalidatePromotionCache(context.Background())

	resp := promotion.ToResponse()
	return &resp, nil
}

func (s *service) DeletePromotion(id uuid.UUID) error {
	if _, err := s.store.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromotionNotFound
		}
		return fmt.Errorf("failed to get promotion: %w", err)
	}

	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.invalidatePromotionCache(context.Background())
	return nil
}

func (s *service) GetPromotion(id uuid.UUID) (*PromotionResponse, error) {
	promotion, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromotionNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	resp := promotion.ToResponse()
	return &resp, nil
}

func (s *service) GetAllPromotions(query PromotionListQuery) (*PaginatedPromotions, error) {
	promotions, totalCount, err := s.store.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]PromotionResponse, len(promotions))
	for i := range promotions {
		responses[i] = promotions[i].ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedPromotions{
		Promotions: responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) invalidatePromotionCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_PROMOTIONS_ALL)
}
