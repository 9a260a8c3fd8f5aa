package domain

// DateLayout is the calendar-date format used for streak accounting.
// Streak days are counted on UTC day boundaries.
const DateLayout = "2006-01-02"

// Stats holds the gamification record. Level is derived from XP
// (floor(xp/100)+1) but stored alongside it so exported snapshots are
// self-contained.
type Stats struct {
	XP             int    `json:"xp"`
	Streak         int    `json:"streak"`
	Level          int    `json:"level"`
	LastReviewDate string `json:"lastReviewDate,omitempty"` // UTC calendar date, DateLayout
}

// Settings are the session-planning preferences.
type Settings struct {
	DailyGoal int   `json:"dailyGoal"` // batch size, clamped to [1,200] on write
	Scope     Scope `json:"scope"`
}

// DefaultSettings returns the preferences a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{DailyGoal: 10, Scope: ScopeAll()}
}
