package storage

import (
	"fmt"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// Batch size bounds for a single review session.
const (
	MinBatchLimit = 1
	MaxBatchLimit = 200
)

// DueVocabs returns every card whose due date has passed at now, most
// overdue first. Ties on due_at break by insertion order so the result
// is deterministic.
func (db *DB) DueVocabs(now time.Time, scope domain.Scope) ([]domain.Vocab, error) {
	clause, args := scopeClause(scope)
	args = append([]any{now}, args...)
	rows, err := db.conn.Query(`
		SELECT `+vocabColumns+`
		FROM vocabs WHERE due_at <= ?`+clause+`
		ORDER BY due_at ASC, rowid ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get due vocabs: %w", err)
	}
	return scanVocabs(rows)
}

// CountDue returns how many cards are due at now within the scope.
func (db *DB) CountDue(now time.Time, scope domain.Scope) (int, error) {
	clause, args := scopeClause(scope)
	args = append([]any{now}, args...)
	var n int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM vocabs WHERE due_at <= ?`+clause,
		args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count due vocabs: %w", err)
	}
	return n, nil
}

// TodaysBatch assembles the review session for now: due cards first, most
// overdue leading, and if they do not fill the limit, cards never
// reviewed before are appended in insertion order. Limits outside
// [1,200] are clamped. Callers wanting a hard rejection validate the
// limit before calling.
func (db *DB) TodaysBatch(now time.Time, limit int, scope domain.Scope) ([]domain.Vocab, error) {
	if limit < MinBatchLimit {
		limit = MinBatchLimit
	}
	if limit > MaxBatchLimit {
		limit = MaxBatchLimit
	}

	due, err := db.DueVocabs(now, scope)
	if err != nil {
		return nil, err
	}
	if len(due) >= limit {
		return due[:limit], nil
	}

	batch := due
	seen := make(map[string]bool, len(due))
	for _, v := range due {
		seen[v.ID] = true
	}

	clause, args := scopeClause(scope)
	rows, err := db.conn.Query(`
		SELECT `+vocabColumns+`
		FROM vocabs WHERE last_reviewed_at IS NULL AND reps = 0`+clause+`
		ORDER BY rowid ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get unreviewed vocabs: %w", err)
	}
	fresh, err := scanVocabs(rows)
	if err != nil {
		return nil, err
	}

	for _, v := range fresh {
		if len(batch) >= limit {
			break
		}
		if seen[v.ID] {
			continue
		}
		batch = append(batch, v)
	}
	return batch, nil
}
