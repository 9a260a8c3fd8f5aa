package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/conorfennell/vocabdrill/internal/domain"
	"github.com/conorfennell/vocabdrill/internal/impex"
)

// 4 MiB is generous for a personal card collection.
const maxImportBytes = 4 << 20

// handleGetExport streams the whole store as a JSON snapshot download.
func (s *Server) handleGetExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := impex.Export(s.db)
		if err != nil {
			internalError(w, "exporting snapshot", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="vocabdrill.json"`)
		w.Write(data)
	}
}

// handlePostImport replaces the store's state with an uploaded snapshot.
// A malformed payload is rejected with 400 and the store stays as it was.
func (s *Server) handlePostImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, _, err := r.FormFile("snapshot")
		if err != nil {
			http.Error(w, "Missing snapshot file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
		if err != nil {
			internalError(w, "reading snapshot upload", err)
			return
		}

		if err := impex.Import(s.db, data); err != nil {
			if errors.Is(err, domain.ErrMalformedSnapshot) {
				http.Error(w, "Snapshot is not a valid export", http.StatusBadRequest)
				return
			}
			internalError(w, "importing snapshot", err)
			return
		}
		s.render(w, "import_success", nil)
	}
}
