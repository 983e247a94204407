package payments

import "errors"

var (
	ErrUnknownMethod  = errors.New("unknown payment method")
	ErrInvalidDetails = errors.New("invalid payment details")
)
