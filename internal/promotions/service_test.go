package promotions

import (
	"context"
	"testing"
	"time"

	"flyviet/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureService(t *testing.T) Service {
	t.Helper()
	return NewService(NewFixtureStore())
}

func TestValidatePercentDiscount(t *testing.T) {
	svc := fixtureService(t)

	result, err := svc.Validate(context.Background(), "WELCOME10", 1000000)
	require.NoError(t, err)

	assert.Equal(t, "WELCOME10", result.Code)
	assert.Equal(t, pricing.DiscountPercent, result.DiscountType)
	assert.Equal(t, float64(100000), result.DiscountAmount)
	assert.Equal(t, float64(900000), result.DiscountedTotal)
}

func TestValidateFixedDiscount(t *testing.T) {
	svc := fixtureService(t)

	result, err := svc.Validate(context.Background(), "FLY200K", 1500000)
	require.NoError(t, err)

	assert.Equal(t, float64(200000), result.DiscountAmount)
	assert.Equal(t, float64(1300000), result.DiscountedTotal)
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	svc := fixtureService(t)

	result, err := svc.Validate(context.Background(), "welcome10", 500000)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", result.Code)
}

func TestValidateUnknownCode(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Validate(context.Background(), "NOSUCHCODE", 1000000)
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestValidateExpiredCode(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Validate(context.Background(), "EXPIRED20", 1000000)
	assert.ErrorIs(t, err, ErrPromotionExpired)
}

func TestValidateDepletedCode(t *testing.T) {
	store := NewFixtureStore()
	svc := NewService(store)

	promotion, err := store.GetByCode("FLY200K")
	require.NoError(t, err)

	for i := 0; i < promotion.UsageLimit; i++ {
		require.NoError(t, store.IncrementUsage(promotion.ID))
	}

	_, err = svc.Validate(context.Background(), "FLY200K", 1000000)
	assert.ErrorIs(t, err, ErrPromotionDepleted)
}

func TestConsumeCodeIncrementsUsage(t *testing.T) {
	store := NewFixtureStore()
	svc := NewService(store)

	require.NoError(t, svc.ConsumeCode(context.Background(), "FLY200K"))

	promotion, err := store.GetByCode("FLY200K")
	require.NoError(t, err)
	assert.Equal(t, 1, promotion.UsedCount)
}

func TestFixtureStoreRejectsWrites(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.CreatePromotion(CreatePromotionRequest{
		Code:          "NEWCODE",
		DiscountType:  "percent",
		DiscountValue: 5,
		ValidFrom:     time.Now(),
		ValidUntil:    time.Now().AddDate(0, 1, 0),
	})
	assert.ErrorIs(t, err, ErrFixtureReadOnly)
}

func TestCreatePromotionRejectsOverAHundredPercent(t *testing.T) {
	svc := NewService(NewFixtureStore())

	_, err := svc.CreatePromotion(CreatePromotionRequest{
		Code:          "TOOBIG",
		DiscountType:  "percent",
		DiscountValue: 150,
		ValidFrom:     time.Now(),
		ValidUntil:    time.Now().AddDate(0, 1, 0),
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrFixtureReadOnly)
}

func TestGetAllPromotionsActiveFilter(t *testing.T) {
	svc := fixtureService(t)

	active := true
	result, err := svc.GetAllPromotions(PromotionListQuery{Active: &active})
	require.NoError(t, err)
	for _, promotion := range result.Promotions {
		assert.True(t, promotion.Active)
	}
}
