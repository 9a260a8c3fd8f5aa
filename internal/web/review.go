package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

type answerInput struct {
	Quality int `validate:"min=0,max=5"`
}

// sessionScope reads the preferred review scope and batch size.
func (s *Server) sessionScope() (domain.Settings, error) {
	return s.db.GetSettings()
}

// handleGetNextReview renders the front of the next card in today's batch.
func (s *Server) handleGetNextReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := s.sessionScope()
		if err != nil {
			internalError(w, "loading settings", err)
			return
		}
		batch, err := s.db.TodaysBatch(s.now(), settings.DailyGoal, settings.Scope)
		if err != nil {
			internalError(w, "assembling batch", err)
			return
		}
		if len(batch) == 0 {
			s.render(w, "review_done", nil)
			return
		}
		s.render(w, "card_front", map[string]any{
			"Vocab":     batch[0],
			"Remaining": len(batch),
		})
	}
}

// handleShowAnswer renders the back of a card.
func (s *Server) handleShowAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/review/answer/")
		v, err := s.db.FindVocabByID(id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.render(w, "card_back", v)
	}
}

// handlePostReview grades a card, updates its schedule and the stats in
// one step, and moves on to the next card.
func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/review/")

		quality, err := strconv.Atoi(r.PostFormValue("quality"))
		if err != nil {
			http.Error(w, "Invalid quality", http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(answerInput{Quality: quality}); err != nil {
			http.Error(w, "Quality must be between 0 and 5", http.StatusBadRequest)
			return
		}

		_, err = s.db.AnswerReview(id, domain.Quality(quality), s.now())
		if err != nil && !notFoundIsNoop(err) {
			internalError(w, "answering review", err)
			return
		}
		// A concurrently deleted card changed nothing; either way, show
		// the next card.
		s.handleGetNextReview()(w, r)
	}
}
