package promotions

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) Store {
	return &postgresStore{db: db}
}

func (s *postgresStore) GetByID(id uuid.UUID) (*Promotion, error) {
	var promotion Promotion
	err := s.db.Where("id = ?", id).First(&promotion).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *postgresStore) GetByCode(code string) (*Promotion, error) {
	var promotion Promotion
	err := s.db.Where("UPPER(code) = ?", strings.ToUpper(code)).First(&promotion).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (s *postgresStore) GetAll(query PromotionListQuery) ([]Promotion, int64, error) {
	var promotions []Promotion
	var totalCount int64

	db := s.db.Model(&Promotion{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(code) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.Active != nil {
		db = db.Where("active = ?", *query.Active)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&promotions).Error

	return promotions, totalCount, err
}

func (s *postgresStore) Create(promotion *Promotion) error {
	return s.db.Create(promotion).Error
}

func (s *postgresStore) Update(id uuid.UUID, updates map[string]interface{}) (*Promotion, error) {
	var promotion Promotion

	if err := s.db.Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&promotion).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, err
	}

	return &promotion, nil
}

func (s *postgresStore) Delete(id uuid.UUID) error {
	return s.db.Where("id = ?", id).Delete(&Promotion{}).Error
}

// IncrementUsage bumps the usage counter, re-checking the limit under lock
// so two concurrent bookings cannot both take the last slot.
func (s *postgresStore) IncrementUsage(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var promotion Promotion

		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", id).
			First(&promotion).Error; err != nil {
			return err
		}

		if promotion.UsageLimit > 0 && promotion.UsedCount >= promotion.UsageLimit {
			return fmt.Errorf("%w: %s", ErrPromotionDepleted, promotion.Code)
		}

		return tx.Model(&promotion).Update("used_count", promotion.UsedCount+1).Error
	})
}
