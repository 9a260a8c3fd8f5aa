// Package sm2 implements the SM-2 spaced repetition algorithm used to
// schedule vocabulary reviews. All functions are pure: they take the
// current state and a clock value and return a new state, leaving
// persistence to the caller.
package sm2

import (
	"math"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

const (
	initialEF = 2.5
	minEF     = 1.3
)

// InitState returns a fresh review state for a card created at now.
// The card is due immediately for its first review.
func InitState(now time.Time) domain.ReviewState {
	return domain.ReviewState{
		EF:       initialEF,
		Interval: 0,
		Reps:     0,
		DueAt:    now,
	}
}

// Review computes the next review state for a card graded with quality at
// now. The previous state is not mutated. Callers must validate quality
// against domain.Quality.IsValid before calling; out-of-range values are
// undefined here.
//
// EF update: EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)), floored at 1.3.
// A lapse (q < 3) resets reps and schedules the card for the next day.
// Successful recalls progress 1 day, 6 days, then round(interval * EF').
func Review(prev domain.ReviewState, quality domain.Quality, now time.Time) domain.ReviewState {
	next := prev

	q := float64(quality)
	ef := next.EF + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < minEF {
		ef = minEF
	}
	next.EF = ef

	if !quality.Passing() {
		next.Reps = 0
		next.Interval = 1
	} else {
		next.Reps = prev.Reps + 1
		switch next.Reps {
		case 1:
			next.Interval = 1
		case 2:
			next.Interval = 6
		default:
			next.Interval = int(math.Round(float64(prev.Interval) * next.EF))
			if next.Interval == 0 {
				// A zero prior interval would otherwise stagnate forever.
				next.Interval = 1
			}
		}
	}

	// Calendar-day arithmetic: AddDate preserves the local time of day
	// across DST transitions where a 24h Add would not.
	next.DueAt = now.AddDate(0, 0, next.Interval)
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt
	return next
}
