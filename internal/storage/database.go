package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection. Every
// logical update runs in one transaction, so concurrent answers for the
// same card serialize at the database; last writer wins.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY and keeps :memory: databases from splitting per conn.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

const vocabColumns = `id, front, back, deck_id, created_at, ef, interval, reps, due_at, last_reviewed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// scanVocab reads one vocabs row into a domain.Vocab.
func scanVocab(row rowScanner) (*domain.Vocab, error) {
	var (
		v            domain.Vocab
		deckID       sql.NullString
		lastReviewed sql.NullTime
	)
	err := row.Scan(
		&v.ID,
		&v.Front,
		&v.Back,
		&deckID,
		&v.CreatedAt,
		&v.Review.EF,
		&v.Review.Interval,
		&v.Review.Reps,
		&v.Review.DueAt,
		&lastReviewed,
	)
	if err != nil {
		return nil, err
	}
	if deckID.Valid {
		id := deckID.String
		v.DeckID = &id
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		v.Review.LastReviewedAt = &t
	}
	return &v, nil
}

func scanVocabs(rows *sql.Rows) ([]domain.Vocab, error) {
	defer rows.Close()
	var vocabs []domain.Vocab
	for rows.Next() {
		v, err := scanVocab(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vocab row: %w", err)
		}
		vocabs = append(vocabs, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate vocab rows: %w", err)
	}
	return vocabs, nil
}

// nullDeckID converts an optional deck reference to its SQL form.
func nullDeckID(deckID *string) sql.NullString {
	if deckID == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *deckID, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// scopeClause renders a domain.Scope as a SQL condition on deck_id.
// The returned clause starts with " AND" so it can be appended to an
// existing WHERE.
func scopeClause(scope domain.Scope) (string, []any) {
	switch scope.Kind {
	case domain.ScopeDeckOnly:
		return " AND deck_id = ?", []any{scope.DeckID}
	case domain.ScopeNoDeck:
		return " AND deck_id IS NULL", nil
	default:
		return "", nil
	}
}
