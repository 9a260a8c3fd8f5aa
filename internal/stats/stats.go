// Package stats implements the gamification bookkeeping attached to a
// review event: XP, level and the daily review streak. Like the
// scheduler, everything here is pure; the store commits the result
// together with the card's new review state.
package stats

import (
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// XP granted per review by quality: 5 for a perfect recall, 3 for a good
// one, 1 for a hard one, nothing for a lapse.
func xpFor(quality domain.Quality) int {
	switch {
	case quality >= domain.QualityPerfect:
		return 5
	case quality >= domain.QualityGood:
		return 3
	case quality >= domain.QualityHard:
		return 1
	default:
		return 0
	}
}

// Level derives the level for a given XP total.
func Level(xp int) int {
	level := xp/100 + 1
	if level < 1 {
		level = 1
	}
	return level
}

// ApplyReview returns the stats record after one answered review at now.
// Streak days are counted on UTC calendar-day boundaries: a review on the
// day after the last counted one extends the streak, a gap resets it, and
// repeat reviews on the same day leave it unchanged. A last-review date in
// the future (clock moved backward, restored backup) is treated as
// same-day: streak and date are left as they are.
func ApplyReview(prev domain.Stats, quality domain.Quality, now time.Time) domain.Stats {
	next := prev
	today := now.UTC().Format(domain.DateLayout)

	switch diff, ok := dayDiff(prev.LastReviewDate, today); {
	case !ok:
		next.Streak = 1
	case diff == 1:
		next.Streak = prev.Streak + 1
	case diff > 1:
		next.Streak = 1
	}
	// diff <= 0 falls through: same day, or stale future date.

	next.XP = prev.XP + xpFor(quality)
	next.Level = Level(next.XP)
	if next.LastReviewDate == "" || next.LastReviewDate < today {
		next.LastReviewDate = today
	}
	return next
}

// dayDiff returns the whole-day difference from the recorded date to
// today. ok is false when no prior date is recorded or it does not parse.
func dayDiff(recorded, today string) (int, bool) {
	if recorded == "" {
		return 0, false
	}
	from, err := time.Parse(domain.DateLayout, recorded)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(domain.DateLayout, today)
	if err != nil {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}
