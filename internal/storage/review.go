package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
	"github.com/conorfennell/vocabdrill/internal/sm2"
	"github.com/conorfennell/vocabdrill/internal/stats"
)

// ReviewResult is what one answered review changed.
type ReviewResult struct {
	Vocab domain.Vocab
	Stats domain.Stats
}

// AnswerReview records one graded review: the card's SM-2 state and the
// gamification record update together in a single transaction, or not at
// all. A card that has disappeared (deleted concurrently) yields
// domain.ErrNotFound; callers treat that as "nothing changed", not as a
// user-facing failure.
func (db *DB) AnswerReview(vocabID string, quality domain.Quality, now time.Time) (*ReviewResult, error) {
	if !quality.IsValid() {
		return nil, domain.ErrInvalidQuality
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin review of vocab %s: %w", vocabID, err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(`
		SELECT `+vocabColumns+`
		FROM vocabs WHERE id = ?
	`, vocabID)
	v, err := scanVocab(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load vocab %s for review: %w", vocabID, err)
	}

	current, err := scanStats(tx.QueryRow(statsQuery))
	if err != nil {
		return nil, fmt.Errorf("failed to load stats for review: %w", err)
	}

	v.Review = sm2.Review(v.Review, quality, now)
	updated := stats.ApplyReview(current, quality, now)

	_, err = tx.Exec(`
		UPDATE vocabs
		SET ef = ?, interval = ?, reps = ?, due_at = ?, last_reviewed_at = ?
		WHERE id = ?
	`,
		v.Review.EF,
		v.Review.Interval,
		v.Review.Reps,
		v.Review.DueAt,
		nullTime(v.Review.LastReviewedAt),
		v.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update review state of vocab %s: %w", v.ID, err)
	}

	if err := execUpdateStats(tx, updated); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review of vocab %s: %w", v.ID, err)
	}
	return &ReviewResult{Vocab: *v, Stats: updated}, nil
}

// ResetProgress puts a card back to a fresh review state, due
// immediately. This is the only operation that moves a due date backward.
func (db *DB) ResetProgress(vocabID string, now time.Time) error {
	state := sm2.InitState(now)
	res, err := db.conn.Exec(`
		UPDATE vocabs
		SET ef = ?, interval = ?, reps = ?, due_at = ?, last_reviewed_at = NULL
		WHERE id = ?
	`, state.EF, state.Interval, state.Reps, state.DueAt, vocabID)
	if err != nil {
		return fmt.Errorf("failed to reset vocab %s: %w", vocabID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
