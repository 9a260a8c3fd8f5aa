package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// Source is an origin of cards: a local directory or a git repository of
// markdown card files, reconciled into a deck by sync.
type Source struct {
	ID          int64
	Path        string
	Type        string // "local" or "git"
	DeckID      sql.NullString
	LastScanned sql.NullTime
}

// InsertSource registers a new source feeding the given deck (nil for
// unassigned cards) and returns its ID.
func (db *DB) InsertSource(path, sourceType string, deckID *string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sources (path, type, deck_id)
		VALUES (?, ?, ?)
	`, path, sourceType, nullDeckID(deckID))
	if err != nil {
		return 0, fmt.Errorf("failed to insert source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// FindSourceByPath retrieves a source by its path, or nil when absent.
func (db *DB) FindSourceByPath(path string) (*Source, error) {
	var s Source
	row := db.conn.QueryRow(`
		SELECT id, path, type, deck_id, last_scanned
		FROM sources WHERE path = ?
	`, path)

	err := row.Scan(&s.ID, &s.Path, &s.Type, &s.DeckID, &s.LastScanned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find source by path %s: %w", path, err)
	}
	return &s, nil
}

// GetAllSources retrieves all stored sources.
func (db *DB) GetAllSources() ([]Source, error) {
	rows, err := db.conn.Query(`
		SELECT id, path, type, deck_id, last_scanned
		FROM sources ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		if err := rows.Scan(&s.ID, &s.Path, &s.Type, &s.DeckID, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate source rows: %w", err)
	}
	return sources, nil
}

// DeleteSource removes a source. Cards it produced stay in their deck.
func (db *DB) DeleteSource(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete source %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSourceLastScanned stamps the source after a completed sync.
func (db *DB) UpdateSourceLastScanned(sourceID int64, now time.Time) error {
	_, err := db.conn.Exec(`
		UPDATE sources SET last_scanned = ? WHERE id = ?
	`, now, sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source ID %d: %w", sourceID, err)
	}
	return nil
}

// GetVocabsBySourceID retrieves the id and fingerprint of every card a
// source produced, for orphan detection during sync.
func (db *DB) GetVocabsBySourceID(sourceID int64) (map[string]string, error) {
	rows, err := db.conn.Query(`
		SELECT id, fingerprint FROM vocabs WHERE source_id = ?
	`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabs for source ID %d: %w", sourceID, err)
	}
	defer rows.Close()

	byFingerprint := make(map[string]string)
	for rows.Next() {
		var id string
		var fingerprint sql.NullString
		if err := rows.Scan(&id, &fingerprint); err != nil {
			return nil, fmt.Errorf("failed to scan vocab row for source ID %d: %w", sourceID, err)
		}
		byFingerprint[fingerprint.String] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vocab rows for source ID %d: %w", sourceID, err)
	}
	return byFingerprint, nil
}
