package web

import (
	"net/http"
	"strings"
)

type vocabForm struct {
	Front  string `validate:"required,max=500"`
	Back   string `validate:"required,max=500"`
	DeckID string `validate:"omitempty,uuid4"`
}

func vocabFormFromRequest(r *http.Request) vocabForm {
	return vocabForm{
		Front:  strings.TrimSpace(r.PostFormValue("front")),
		Back:   strings.TrimSpace(r.PostFormValue("back")),
		DeckID: strings.TrimSpace(r.PostFormValue("deck_id")),
	}
}

func (f vocabForm) deckID() *string {
	if f.DeckID == "" {
		return nil
	}
	return &f.DeckID
}

// handlePostVocab creates a new card, optionally assigned to a deck.
func (s *Server) handlePostVocab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		form := vocabFormFromRequest(r)
		if err := s.validate.Struct(form); err != nil {
			http.Error(w, "Front and back are required", http.StatusBadRequest)
			return
		}
		v, err := s.db.InsertVocab(form.Front, form.Back, form.deckID(), s.now())
		if err != nil {
			internalError(w, "inserting vocab", err)
			return
		}
		s.render(w, "vocab_row", v)
	}
}

// handleVocab handles POST (edit), DELETE, and POST reset on one card.
func (s *Server) handleVocab() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/vocabs/")

		if id, ok := strings.CutSuffix(rest, "/reset"); ok {
			if r.Method != http.MethodPost {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				return
			}
			if err := s.db.ResetProgress(id, s.now()); err != nil && !notFoundIsNoop(err) {
				internalError(w, "resetting vocab", err)
				return
			}
			v, err := s.db.FindVocabByID(id)
			if err != nil {
				http.NotFound(w, r)
				return
			}
			s.render(w, "vocab_row", v)
			return
		}

		switch r.Method {
		case http.MethodPost:
			form := vocabFormFromRequest(r)
			if err := s.validate.Struct(form); err != nil {
				http.Error(w, "Front and back are required", http.StatusBadRequest)
				return
			}
			if err := s.db.UpdateVocab(rest, form.Front, form.Back, form.deckID()); err != nil {
				if notFoundIsNoop(err) {
					http.NotFound(w, r)
					return
				}
				internalError(w, "updating vocab", err)
				return
			}
			v, err := s.db.FindVocabByID(rest)
			if err != nil {
				internalError(w, "reloading vocab", err)
				return
			}
			s.render(w, "vocab_row", v)

		case http.MethodDelete:
			if err := s.db.DeleteVocab(rest); err != nil && !notFoundIsNoop(err) {
				internalError(w, "deleting vocab", err)
				return
			}
			w.WriteHeader(http.StatusOK)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
