package domain

import "time"

// ReviewState is the SM-2 scheduling state embedded in every vocab.
type ReviewState struct {
	EF             float64    `json:"ef"`
	Interval       int        `json:"interval"`
	Reps           int        `json:"reps"`
	DueAt          time.Time  `json:"dueAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"` // nil before first review.
}

// Vocab represents a single front/back vocabulary card.
type Vocab struct {
	ID        string      `json:"id"`
	Front     string      `json:"front"`
	Back      string      `json:"back"`
	DeckID    *string     `json:"deckId,omitempty"` // nil means the card belongs to no deck.
	CreatedAt time.Time   `json:"createdAt"`
	Review    ReviewState `json:"review"`
}

// Deck groups cards by reference: cards store the deck id, decks do not
// enumerate their cards.
type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
