package storage

import (
	"fmt"
	"sort"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// ExportState gathers everything a snapshot carries.
func (db *DB) ExportState() ([]domain.Deck, []domain.Vocab, domain.Stats, error) {
	decks, err := db.GetAllDecks()
	if err != nil {
		return nil, nil, domain.Stats{}, err
	}
	vocabs, err := db.GetVocabs(domain.ScopeAll())
	if err != nil {
		return nil, nil, domain.Stats{}, err
	}
	stats, err := db.GetStats()
	if err != nil {
		return nil, nil, domain.Stats{}, err
	}
	return decks, vocabs, stats, nil
}

// ReplaceState swaps the entire card/deck/stats state for the snapshot
// contents in one transaction. On any failure the store is left
// untouched. Source links are cleared since imported cards no longer
// correspond to synced files.
func (db *DB) ReplaceState(decks []domain.Deck, vocabs []domain.Vocab, stats domain.Stats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot import: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM vocabs`,
		`DELETE FROM decks`,
		`UPDATE sources SET deck_id = NULL`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear state for import: %w", err)
		}
	}

	// Deterministic insertion order keeps batch tie-breaks stable after a
	// round trip.
	sort.Slice(decks, func(i, j int) bool {
		if !decks[i].CreatedAt.Equal(decks[j].CreatedAt) {
			return decks[i].CreatedAt.Before(decks[j].CreatedAt)
		}
		return decks[i].ID < decks[j].ID
	})
	sort.Slice(vocabs, func(i, j int) bool {
		if !vocabs[i].CreatedAt.Equal(vocabs[j].CreatedAt) {
			return vocabs[i].CreatedAt.Before(vocabs[j].CreatedAt)
		}
		return vocabs[i].ID < vocabs[j].ID
	})

	for _, d := range decks {
		_, err := tx.Exec(`
			INSERT INTO decks (id, name, description, created_at)
			VALUES (?, ?, ?, ?)
		`, d.ID, d.Name, d.Description, d.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import deck %s: %w", d.ID, err)
		}
	}

	for _, v := range vocabs {
		_, err := tx.Exec(`
			INSERT INTO vocabs (id, front, back, deck_id, created_at, ef, interval, reps, due_at, last_reviewed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
			nullTime(v.Review.LastReviewedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to import vocab %s: %w", v.ID, err)
		}
	}

	if err := execUpdateStats(tx, stats); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot import: %w", err)
	}
	return nil
}
