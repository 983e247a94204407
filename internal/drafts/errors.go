package drafts

import "errors"

var (
	ErrDraftNotFound   = errors.New("booking draft not found or expired")
	ErrDraftExists     = errors.New("booking draft already exists")
	ErrVersionConflict = errors.New("booking draft was modified concurrently")

	ErrWrongStage        = errors.New("operation not valid in current stage")
	ErrPassengerMismatch = errors.New("passenger list does not match counts")
	ErrInvalidPhone      = errors.New("invalid Vietnamese phone number")
)
