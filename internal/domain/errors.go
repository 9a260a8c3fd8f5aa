package domain

import "errors"

// Sentinel errors shared across the store and web layers.
// Check with errors.Is.
var (
	ErrNotFound          = errors.New("vocabdrill: not found")
	ErrInvalidQuality    = errors.New("vocabdrill: quality must be between 0 and 5")
	ErrMalformedSnapshot = errors.New("vocabdrill: malformed snapshot")
)
