package promotions

import (
	"time"

	"flyviet/internal/pricing"

	"github.com/google/uuid"
)

type Promotion struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code        string    `json:"code" gorm:"not null;uniqueIndex;size:30"`
	Description string    `json:"description" gorm:"size:255"`

	DiscountType  pricing.DiscountType `json:"discount_type" gorm:"type:varchar(10);not null"`
	DiscountValue float64              `json:"discount_value" gorm:"not null;check:discount_value > 0"`

	ValidFrom  time.Time `json:"valid_from" gorm:"not null"`
	ValidUntil time.Time `json:"valid_until" gorm:"not null"`

	UsageLimit int  `json:"usage_limit" gorm:"default:0"` // 0 means unlimited
	UsedCount  int  `json:"used_count" gorm:"default:0"`
	Active     bool `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// Discount converts the promotion into the calculator's discount shape
func (p *Promotion) Discount() pricing.Discount {
	return pricing.Discount{
		Type:  p.DiscountType,
		Value: p.DiscountValue,
	}
}

// IsUsable reports whether the promotion can be applied at the given time
func (p *Promotion) IsUsable(at time.Time) bool {
	if !p.Active {
		return false
	}
	if at.Before(p.ValidFrom) || at.After(p.ValidUntil) {
		return false
	}
	if p.UsageLimit > 0 && p.UsedCount >= p.UsageLimit {
		return false
	}
	return true
}

type PromotionResponse struct {
	ID            string               `json:"id"`
	Code          string               `json:"code"`
	Description   string               `json:"description"`
	DiscountType  pricing.DiscountType `json:"discount_type"`
	DiscountValue float64              `json:"discount_value"`
	ValidFrom     time.Time            `json:"valid_from"`
	ValidUntil    time.Time            `json:"valid_until"`
	UsageLimit    int                  `json:"usage_limit"`
	UsedCount     int                  `json:"used_count"`
	Active        bool                 `json:"active"`
	CreatedAt     time.Time            `json:"created_at"`
}

func (p *Promotion) ToResponse() PromotionResponse {
	return PromotionResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Description:   p.Description,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		ValidFrom:     p.ValidFrom,
		ValidUntil:    p.ValidUntil,
		UsageLimit:    p.UsageLimit,
		UsedCount:     p.UsedCount,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

type ValidateRequest struct {
	Code  string  `json:"code" binding:"required,min=2,max=30"`
	Total float64 `json:"total" binding:"required,min=0"`
}

// ValidateResponse reports the discount for a total so clients can show the
// discounted amount without recomputing locally
type ValidateResponse struct {
	Code            string               `json:"code"`
	DiscountType    pricing.DiscountType `json:"discount_type"`
	DiscountValue   float64              `json:"discount_value"`
	DiscountAmount  float64              `json:"discount_amount"`
	DiscountedTotal float64              `json:"discounted_total"`
}

type CreatePromotionRequest struct {
	Code          string    `json:"code" binding:"required,min=2,max=30"`
	Description   string    `json:"description" binding:"max=255"`
	DiscountType  string    `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue float64   `json:"discount_value" binding:"required,gt=0"`
	ValidFrom     time.Time `json:"valid_from" binding:"required"`
	ValidUntil    time.Time `json:"valid_until" binding:"required"`
	UsageLimit    int       `json:"usage_limit" binding:"omitempty,min=0"`
}

type UpdatePromotionRequest struct {
	Description   *string    `json:"description" binding:"omitempty,max=255"`
	DiscountType  *string    `json:"discount_type" binding:"omitempty,oneof=percent fixed"`
	DiscountValue *float64   `json:"discount_value" binding:"omitempty,gt=0"`
	ValidFrom     *time.Time `json:"valid_from"`
	ValidUntil    *time.Time `json:"valid_until"`
	UsageLimit    *int       `json:"usage_limit" binding:"omitempty,min=0"`
	Active        *bool      `json:"active"`
}

type PromotionListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Active *bool  `form:"active"`
}

type PaginatedPromotions struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}
