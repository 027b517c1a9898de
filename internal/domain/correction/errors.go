package correction

import "errors"

var (
	ErrCorrectionNotFound = errors.New("correction request not found")
	ErrAlreadyReviewed    = errors.New("correction request already reviewed")
)
