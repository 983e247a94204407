package promotions

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store abstracts where promotions live. The postgres store is the normal
// backend; the fixture store serves a fixed catalog for demos and local
// development. Which one runs is a config decision, never a runtime
// fallback triggered by errors.
type Store interface {
	GetByID(id uuid.UUID) (*Promotion, error)
	GetByCode(code string) (*Promotion, error)
	GetAll(query PromotionListQuery) ([]Promotion, int64, error)
	Create(promotion *Promotion) error
	Update(id uuid.UUID, updates map[string]interface{}) (*Promotion, error)
	Delete(id uuid.UUID) error
	IncrementUsage(id uuid.UUID) error
}

// NewStore selects a store implementation by name
func NewStore(kind string, db *gorm.DB) (Store, error) {
	switch kind {
	case "", "postgres":
		return NewPostgresStore(db), nil
	case "fixture":
		return NewFixtureStore(), nil
	}
	return nil, fmt.Errorf("unknown promotions store: %s", kind)
}
