package promotions

import "errors"

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrPromotionInvalid  = errors.New("promotion code is not valid")
	ErrPromotionExpired  = errors.New("promotion code has expired")
	ErrPromotionDepleted = errors.New("promotion usage limit reached")
	ErrDuplicateCode     = errors.New("promotion code already exists")
	ErrFixtureReadOnly   = errors.New("fixture store is read-only")
)
