package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// InsertDeck creates a new deck and returns it.
func (db *DB) InsertDeck(name, description string, now time.Time) (*domain.Deck, error) {
	deck := domain.Deck{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
	}
	_, err := db.conn.Exec(`
		INSERT INTO decks (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`, deck.ID, deck.Name, deck.Description, deck.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert deck %s: %w", deck.Name, err)
	}
	return &deck, nil
}

// FindDeckByID retrieves a deck by id.
func (db *DB) FindDeckByID(id string) (*domain.Deck, error) {
	var d domain.Deck
	row := db.conn.QueryRow(`
		SELECT id, name, description, created_at
		FROM decks WHERE id = ?
	`, id)

	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find deck %s: %w", id, err)
	}
	return &d, nil
}

// GetAllDecks retrieves all decks in creation order.
func (db *DB) GetAllDecks() ([]domain.Deck, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, description, created_at
		FROM decks ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck rows: %w", err)
	}
	return decks, nil
}

// UpdateDeck changes a deck's name and description.
func (db *DB) UpdateDeck(id, name, description string) error {
	res, err := db.conn.Exec(`
		UPDATE decks SET name = ?, description = ? WHERE id = ?
	`, name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update deck %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteDeck removes a deck. Its cards are not deleted: they are
// reassigned to "no deck", along with any sources feeding the deck.
func (db *DB) DeleteDeck(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete of deck %s: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE vocabs SET deck_id = NULL WHERE deck_id = ?`, id); err != nil {
		return fmt.Errorf("failed to unassign vocabs of deck %s: %w", id, err)
	}
	if _, err := tx.Exec(`UPDATE sources SET deck_id = NULL WHERE deck_id = ?`, id); err != nil {
		return fmt.Errorf("failed to unassign sources of deck %s: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

// CountDecks returns the number of decks.
func (db *DB) CountDecks() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM decks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count decks: %w", err)
	}
	return n, nil
}
