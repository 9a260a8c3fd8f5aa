package web

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/vocabdrill/internal/domain"
	"github.com/conorfennell/vocabdrill/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	db        *storage.DB
	router    *http.ServeMux
	reposDir  string
	templates *template.Template
	validate  *validator.Validate
	now       func() time.Time
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, reposDir string) *Server {
	// Parse templates
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:        db,
		router:    http.NewServeMux(),
		reposDir:  reposDir,
		templates: tpl,
		validate:  validator.New(),
		now:       time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	s.router.Handle("/static/", http.StripPrefix("/static/", fileServer))
	s.router.Handle("/", fileServer)

	// HTMX-based routes
	s.router.HandleFunc("/decks", s.handleDecks())
	s.router.HandleFunc("/decks/", s.handleDeck())
	s.router.HandleFunc("/vocabs", s.handlePostVocab())
	s.router.HandleFunc("/vocabs/", s.handleVocab())
	s.router.HandleFunc("/review/next", s.handleGetNextReview())
	s.router.HandleFunc("/review/answer/", s.handleShowAnswer())
	s.router.HandleFunc("/review/", s.handlePostReview())
	s.router.HandleFunc("/profile", s.handleGetProfile())
	s.router.HandleFunc("/settings", s.handleSettings())
	s.router.HandleFunc("/export", s.handleGetExport())
	s.router.HandleFunc("/import", s.handlePostImport())

	// Source management routes
	s.router.HandleFunc("/sources", s.handleSources())
	s.router.HandleFunc("/sources/", s.handleDeleteSource())
	s.router.HandleFunc("/sync", s.handlePostSync())
}

// render executes a named template, logging failures. Template errors
// after the first write cannot be reported to the client anymore.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

// internalError logs err and sends a generic 500.
func internalError(w http.ResponseWriter, context string, err error) {
	log.Printf("Error %s: %v", context, err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// notFoundIsNoop distinguishes "the thing is gone, nothing changed" from
// real failures.
func notFoundIsNoop(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
