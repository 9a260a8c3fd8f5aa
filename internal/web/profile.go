package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/conorfennell/vocabdrill/internal/domain"
)

// handleGetProfile renders the dashboard: deck/card/due counters and the
// gamification record.
func (s *Server) handleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.db.GetStats()
		if err != nil {
			internalError(w, "loading stats", err)
			return
		}
		deckCount, err := s.db.CountDecks()
		if err != nil {
			internalError(w, "counting decks", err)
			return
		}
		vocabCount, err := s.db.CountVocabs()
		if err != nil {
			internalError(w, "counting vocabs", err)
			return
		}
		dueCount, err := s.db.CountDue(s.now(), domain.ScopeAll())
		if err != nil {
			internalError(w, "counting due cards", err)
			return
		}

		s.render(w, "profile", map[string]any{
			"Stats":       stats,
			"DeckCount":   deckCount,
			"VocabCount":  vocabCount,
			"DueCount":    dueCount,
			"ProgressPct": stats.XP % 100,
		})
	}
}

type settingsForm struct {
	DailyGoal int    `validate:"min=1,max=200"`
	Scope     string `validate:"required"`
}

// handleSettings handles GET (form) and POST (save) for preferences.
func (s *Server) handleSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.renderSettings(w)

		case http.MethodPost:
			goal, err := strconv.Atoi(r.PostFormValue("daily_goal"))
			if err != nil {
				http.Error(w, "Invalid daily goal", http.StatusBadRequest)
				return
			}
			scopeValue := strings.TrimSpace(r.PostFormValue("scope"))
			form := settingsForm{DailyGoal: goal, Scope: scopeValue}
			if err := s.validate.Struct(form); err != nil {
				http.Error(w, "Daily goal must be between 1 and 200", http.StatusBadRequest)
				return
			}

			var scope domain.Scope
			switch scopeValue {
			case "all":
				scope = domain.ScopeAll()
			case "none":
				scope = domain.ScopeUnassigned()
			default:
				scope = domain.ScopeDeck(scopeValue)
			}

			if err := s.db.SaveSettings(domain.Settings{DailyGoal: goal, Scope: scope}); err != nil {
				internalError(w, "saving settings", err)
				return
			}
			s.renderSettings(w)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) renderSettings(w http.ResponseWriter) {
	settings, err := s.db.GetSettings()
	if err != nil {
		internalError(w, "loading settings", err)
		return
	}
	decks, err := s.db.GetAllDecks()
	if err != nil {
		internalError(w, "loading decks", err)
		return
	}
	s.render(w, "settings", map[string]any{
		"Settings": settings,
		"Decks":    decks,
	})
}
