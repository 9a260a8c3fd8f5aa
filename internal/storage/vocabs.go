package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/vocabdrill/internal/domain"
	"github.com/conorfennell/vocabdrill/internal/sm2"
)

// InsertVocab creates a new card with a fresh review state and returns it.
// A nil deckID leaves the card unassigned.
func (db *DB) InsertVocab(front, back string, deckID *string, now time.Time) (*domain.Vocab, error) {
	v := domain.Vocab{
		ID:        uuid.NewString(),
		Front:     front,
		Back:      back,
		DeckID:    deckID,
		CreatedAt: now,
		Review:    sm2.InitState(now),
	}
	_, err := db.conn.Exec(`
		INSERT INTO vocabs (id, front, back, deck_id, created_at, ef, interval, reps, due_at, last_reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`,
		v.ID,
		v.Front,
		v.Back,
		nullDeckID(v.DeckID),
		v.CreatedAt,
		v.Review.EF,
		v.Review.Interval,
		v.Review.Reps,
		v.Review.DueAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vocab %s: %w", v.Front, err)
	}
	return &v, nil
}

// InsertSourceVocab creates a card reconciled from a synced source,
// tagged with its content fingerprint so later syncs can detect removal.
func (db *DB) InsertSourceVocab(front, back string, deckID *string, fingerprint string, sourceID int64, now time.Time) (*domain.Vocab, error) {
	v := domain.Vocab{
		ID:        uuid.NewString(),
		Front:     front,
		Back:      back,
		DeckID:    deckID,
		CreatedAt: now,
		Review:    sm2.InitState(now),
	}
	_, err := db.conn.Exec(`
		INSERT INTO vocabs (id, front, back, deck_id, created_at, ef, interval, reps, due_at, last_reviewed_at, fingerprint, source_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)
	`,
		v.ID,
		v.Front,
		v.Back,
		nullDeckID(v.DeckID),
		v.CreatedAt,
		v.Review.EF,
		v.Review.Interval,
		v.Review.Reps,
		v.Review.DueAt,
		fingerprint,
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert source vocab %s: %w", v.Front, err)
	}
	return &v, nil
}

// FindVocabByID retrieves a card by id.
func (db *DB) FindVocabByID(id string) (*domain.Vocab, error) {
	row := db.conn.QueryRow(`
		SELECT `+vocabColumns+`
		FROM vocabs WHERE id = ?
	`, id)
	v, err := scanVocab(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vocab %s: %w", id, err)
	}
	return v, nil
}

// GetVocabs retrieves cards matching the scope in insertion order.
func (db *DB) GetVocabs(scope domain.Scope) ([]domain.Vocab, error) {
	clause, args := scopeClause(scope)
	rows, err := db.conn.Query(`
		SELECT `+vocabColumns+`
		FROM vocabs WHERE 1=1`+clause+`
		ORDER BY rowid
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabs: %w", err)
	}
	return scanVocabs(rows)
}

// UpdateVocab changes a card's text and deck assignment. Review state is
// untouched; only the scheduler moves it.
func (db *DB) UpdateVocab(id, front, back string, deckID *string) error {
	res, err := db.conn.Exec(`
		UPDATE vocabs SET front = ?, back = ?, deck_id = ? WHERE id = ?
	`, front, back, nullDeckID(deckID), id)
	if err != nil {
		return fmt.Errorf("failed to update vocab %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteVocab removes a card.
func (db *DB) DeleteVocab(id string) error {
	res, err := db.conn.Exec(`DELETE FROM vocabs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vocab %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountVocabs returns the number of cards.
func (db *DB) CountVocabs() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM vocabs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vocabs: %w", err)
	}
	return n, nil
}
