package domain

// ScopeKind selects how a due/batch query filters by deck.
type ScopeKind int

const (
	// ScopeAny matches every card.
	ScopeAny ScopeKind = iota
	// ScopeDeckOnly matches cards assigned to one specific deck.
	ScopeDeckOnly
	// ScopeNoDeck matches cards assigned to no deck.
	ScopeNoDeck
)

// Scope is a three-state deck filter. The zero value matches every card.
// An explicit tagged type avoids the empty-string / nil sentinel ambiguity
// a plain optional deck id would have.
type Scope struct {
	Kind   ScopeKind `json:"kind"`
	DeckID string    `json:"deckId,omitempty"` // set only when Kind == ScopeDeckOnly
}

// ScopeAll returns a scope matching every card.
func ScopeAll() Scope { return Scope{Kind: ScopeAny} }

// ScopeDeck returns a scope matching only cards in the given deck.
func ScopeDeck(deckID string) Scope {
	return Scope{Kind: ScopeDeckOnly, DeckID: deckID}
}

// ScopeUnassigned returns a scope matching only cards without a deck.
func ScopeUnassigned() Scope { return Scope{Kind: ScopeNoDeck} }

// IsAll reports whether the scope matches every card.
func (s Scope) IsAll() bool { return s.Kind == ScopeAny }

// IsDeck reports whether the scope matches only the given deck.
func (s Scope) IsDeck(deckID string) bool {
	return s.Kind == ScopeDeckOnly && s.DeckID == deckID
}

// IsUnassigned reports whether the scope matches only cards without a deck.
func (s Scope) IsUnassigned() bool { return s.Kind == ScopeNoDeck }
