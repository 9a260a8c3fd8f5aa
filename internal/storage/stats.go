package storage

import (
	"database/sql"
	"fmt"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

const statsQuery = `SELECT xp, streak, level, last_review_date FROM stats WHERE id = 1`

func scanStats(row rowScanner) (domain.Stats, error) {
	var (
		s        domain.Stats
		lastDate sql.NullString
	)
	if err := row.Scan(&s.XP, &s.Streak, &s.Level, &lastDate); err != nil {
		return domain.Stats{}, err
	}
	s.LastReviewDate = lastDate.String
	return s, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func execUpdateStats(e execer, s domain.Stats) error {
	lastDate := sql.NullString{String: s.LastReviewDate, Valid: s.LastReviewDate != ""}
	_, err := e.Exec(`
		UPDATE stats SET xp = ?, streak = ?, level = ?, last_review_date = ? WHERE id = 1
	`, s.XP, s.Streak, s.Level, lastDate)
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	return nil
}

// GetStats returns the gamification record.
func (db *DB) GetStats() (domain.Stats, error) {
	s, err := scanStats(db.conn.QueryRow(statsQuery))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return s, nil
}

// GetSettings returns the session-planning preferences.
func (db *DB) GetSettings() (domain.Settings, error) {
	var (
		s      domain.Settings
		kind   int
		deckID sql.NullString
	)
	err := db.conn.QueryRow(`
		SELECT daily_goal, scope_kind, scope_deck_id FROM settings WHERE id = 1
	`).Scan(&s.DailyGoal, &kind, &deckID)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	s.Scope = domain.Scope{Kind: domain.ScopeKind(kind), DeckID: deckID.String}
	return s, nil
}

// SaveSettings persists the preferences. The daily goal is clamped to the
// batch bounds; that is planning policy, mirrored by TodaysBatch.
func (db *DB) SaveSettings(s domain.Settings) error {
	if s.DailyGoal < MinBatchLimit {
		s.DailyGoal = MinBatchLimit
	}
	if s.DailyGoal > MaxBatchLimit {
		s.DailyGoal = MaxBatchLimit
	}
	deckID := sql.NullString{String: s.Scope.DeckID, Valid: s.Scope.Kind == domain.ScopeDeckOnly}
	_, err := db.conn.Exec(`
		UPDATE settings SET daily_goal = ?, scope_kind = ?, scope_deck_id = ? WHERE id = 1
	`, s.DailyGoal, int(s.Scope.Kind), deckID)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
