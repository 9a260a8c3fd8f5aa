package web

import (
	"net/http"
	"strings"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

type deckForm struct {
	Name        string `validate:"required,max=120"`
	Description string `validate:"max=500"`
}

// handleDecks handles both GET (list) and POST (create) for decks.
func (s *Server) handleDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderDeckList(w)
		case http.MethodPost:
			form := deckForm{
				Name:        strings.TrimSpace(r.PostFormValue("name")),
				Description: strings.TrimSpace(r.PostFormValue("description")),
			}
			if err := s.validate.Struct(form); err != nil {
				http.Error(w, "Deck name is required", http.StatusBadRequest)
				return
			}
			if _, err := s.db.InsertDeck(form.Name, form.Description, s.now()); err != nil {
				internalError(w, "inserting deck", err)
				return
			}
			s.renderDeckList(w)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeck handles GET (detail), DELETE, and POST (rename) on one deck.
func (s *Server) handleDeck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/decks/")
		switch r.Method {
		case http.MethodGet:
			deck, err := s.db.FindDeckByID(id)
			if err != nil {
				if notFoundIsNoop(err) {
					http.NotFound(w, r)
					return
				}
				internalError(w, "getting deck", err)
				return
			}
			vocabs, err := s.db.GetVocabs(domain.ScopeDeck(id))
			if err != nil {
				internalError(w, "getting deck vocabs", err)
				return
			}
			dueCount, err := s.db.CountDue(s.now(), domain.ScopeDeck(id))
			if err != nil {
				internalError(w, "counting due cards", err)
				return
			}
			s.render(w, "deck_detail", map[string]any{
				"Deck":     deck,
				"Vocabs":   vocabs,
				"DueCount": dueCount,
			})

		case http.MethodPost:
			form := deckForm{
				Name:        strings.TrimSpace(r.PostFormValue("name")),
				Description: strings.TrimSpace(r.PostFormValue("description")),
			}
			if err := s.validate.Struct(form); err != nil {
				http.Error(w, "Deck name is required", http.StatusBadRequest)
				return
			}
			if err := s.db.UpdateDeck(id, form.Name, form.Description); err != nil {
				if notFoundIsNoop(err) {
					http.NotFound(w, r)
					return
				}
				internalError(w, "updating deck", err)
				return
			}
			s.renderDeckList(w)

		case http.MethodDelete:
			if err := s.db.DeleteDeck(id); err != nil && !notFoundIsNoop(err) {
				internalError(w, "deleting deck", err)
				return
			}
			s.renderDeckList(w)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) renderDeckList(w http.ResponseWriter) {
	decks, err := s.db.GetAllDecks()
	if err != nil {
		internalError(w, "getting decks", err)
		return
	}
	s.render(w, "deck_list", map[string]any{
		"Decks": decks,
	})
}
