// Package impex serializes the whole trainer state to and from a JSON
// snapshot, shaped as {decks: {id: Deck}, vocabs: {id: Vocab}, stats}.
// Import validates the payload fully before touching the store, so a
// malformed snapshot can never partially apply.
package impex

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/conorfennell/vocabdrill/internal/domain"
	"github.com/conorfennell/vocabdrill/internal/stats"
	"github.com/conorfennell/vocabdrill/internal/storage"
)

// Snapshot is the persisted-state layout used for export and import.
type Snapshot struct {
	Decks  map[string]domain.Deck  `json:"decks"`
	Vocabs map[string]domain.Vocab `json:"vocabs"`
	Stats  domain.Stats            `json:"stats"`
}

// Export renders the store's current state as a JSON snapshot.
func Export(db *storage.DB) ([]byte, error) {
	decks, vocabs, st, err := db.ExportState()
	if err != nil {
		return nil, fmt.Errorf("export state: %w", err)
	}

	snap := Snapshot{
		Decks:  make(map[string]domain.Deck, len(decks)),
		Vocabs: make(map[string]domain.Vocab, len(vocabs)),
		Stats:  st,
	}
	for _, d := range decks {
		snap.Decks[d.ID] = d
	}
	for _, v := range vocabs {
		snap.Vocabs[v.ID] = v
	}

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}

// Import validates a JSON snapshot and replaces the store's state with it
// in one transaction. Any validation or write failure leaves the store
// unmodified and returns domain.ErrMalformedSnapshot for payload
// problems.
func Import(db *storage.DB, data []byte) error {
	snap, err := parse(data)
	if err != nil {
		return err
	}

	decks := make([]domain.Deck, 0, len(snap.Decks))
	for _, d := range snap.Decks {
		decks = append(decks, d)
	}
	vocabs := make([]domain.Vocab, 0, len(snap.Vocabs))
	for _, v := range snap.Vocabs {
		vocabs = append(vocabs, v)
	}

	if err := db.ReplaceState(decks, vocabs, snap.Stats); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// parse decodes and validates the snapshot payload.
func parse(data []byte) (*Snapshot, error) {
	// The payload must be a JSON object with all three top-level keys
	// present; a bare array, scalar or truncated object is rejected.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", domain.ErrMalformedSnapshot, err)
	}
	for _, key := range []string{"decks", "vocabs", "stats"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", domain.ErrMalformedSnapshot, key)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}

	for id, d := range snap.Decks {
		if d.ID == "" || d.ID != id {
			return nil, fmt.Errorf("%w: deck key %q does not match its id %q", domain.ErrMalformedSnapshot, id, d.ID)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("%w: deck %q has no name", domain.ErrMalformedSnapshot, id)
		}
	}
	for id, v := range snap.Vocabs {
		if v.ID == "" || v.ID != id {
			return nil, fmt.Errorf("%w: vocab key %q does not match its id %q", domain.ErrMalformedSnapshot, id, v.ID)
		}
		if v.Review.EF < 1.3 {
			return nil, fmt.Errorf("%w: vocab %q has EF %v below 1.3", domain.ErrMalformedSnapshot, id, v.Review.EF)
		}
		if v.Review.Interval < 0 || v.Review.Reps < 0 {
			return nil, fmt.Errorf("%w: vocab %q has negative interval or reps", domain.ErrMalformedSnapshot, id)
		}
		if v.DeckID != nil {
			if _, ok := snap.Decks[*v.DeckID]; !ok {
				return nil, fmt.Errorf("%w: vocab %q references unknown deck %q", domain.ErrMalformedSnapshot, id, *v.DeckID)
			}
		}
	}
	if snap.Stats.XP < 0 || snap.Stats.Streak < 0 {
		return nil, fmt.Errorf("%w: negative stats", domain.ErrMalformedSnapshot)
	}
	if snap.Stats.LastReviewDate != "" {
		if _, err := time.Parse(domain.DateLayout, snap.Stats.LastReviewDate); err != nil {
			return nil, fmt.Errorf("%w: last review date %q is not a %s date", domain.ErrMalformedSnapshot, snap.Stats.LastReviewDate, domain.DateLayout)
		}
	}
	// Level is derived; trust XP over a stale stored value.
	snap.Stats.Level = stats.Level(snap.Stats.XP)

	return &snap, nil
}
