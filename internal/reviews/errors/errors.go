package errors

import "errors"

var (
	ErrNotFound = errors.New("review not found")

	ErrDuplicateReview = errors.New("booking already has a review for this target type")
)
