package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/conorfennell/vocabdrill/internal/sync"
)

// handlePostSync triggers a manual sync and re-renders the source list.
func (s *Server) handlePostSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Run in the foreground to make the user wait.
		if err := sync.RunSync(s.db, s.reposDir); err != nil {
			internalError(w, "running sync", err)
			return
		}

		sources, err := s.db.GetAllSources()
		if err != nil {
			internalError(w, "getting sources after sync", err)
			return
		}
		s.render(w, "sync_success", nil)
		s.render(w, "source_list", map[string]any{
			"Sources": sources,
		})
	}
}

// handleSources handles both GET and POST for the sources page.
func (s *Server) handleSources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSources(w, r)
		case http.MethodPost:
			s.handlePostSource(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleGetSources renders the sources management page.
func (s *Server) handleGetSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.GetAllSources()
	if err != nil {
		internalError(w, "getting sources", err)
		return
	}
	decks, err := s.db.GetAllDecks()
	if err != nil {
		internalError(w, "getting decks", err)
		return
	}
	s.render(w, "sources", map[string]any{
		"Sources": sources,
		"Decks":   decks,
	})
}

// handlePostSource adds a new source and re-renders the source list.
func (s *Server) handlePostSource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.PostFormValue("path"))
	if path == "" {
		http.Error(w, "Path cannot be empty", http.StatusBadRequest)
		return
	}

	var deckID *string
	if id := strings.TrimSpace(r.PostFormValue("deck_id")); id != "" {
		deckID = &id
	}

	if _, err := s.db.InsertSource(path, sync.DetectType(path), deckID); err != nil {
		internalError(w, "inserting new source", err)
		return
	}

	sources, err := s.db.GetAllSources()
	if err != nil {
		internalError(w, "getting sources after add", err)
		return
	}
	s.render(w, "source_list", map[string]any{
		"Sources": sources,
	})
}

// handleDeleteSource deletes a source and re-renders the source list.
func (s *Server) handleDeleteSource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		idStr := strings.TrimPrefix(r.URL.Path, "/sources/")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid source ID", http.StatusBadRequest)
			return
		}

		if err := s.db.DeleteSource(id); err != nil && !notFoundIsNoop(err) {
			internalError(w, "deleting source", err)
			return
		}

		sources, err := s.db.GetAllSources()
		if err != nil {
			internalError(w, "getting sources after delete", err)
			return
		}
		s.render(w, "source_list", map[string]any{
			"Sources": sources,
		})
	}
}
