package main

import (
	"log"
	"net/http"
	"os"

	"github.com/conorfennell/vocabdrill/internal/config"
	"github.com/conorfennell/vocabdrill/internal/storage"
	"github.com/conorfennell/vocabdrill/internal/sync"
	"github.com/conorfennell/vocabdrill/internal/web"
)

func main() {
	// 1. Define and parse command-line flags
	f := config.Flags()
	runSync := f.Bool("sync", false, "Sync all registered sources and exit")
	addSource := f.String("add-source", "", "Register a new card source (directory or git URL) and exit")
	sourceDeck := f.String("source-deck", "", "Deck ID a newly added source feeds (optional)")
	if err := f.Parse(os.Args[1:]); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := config.Load(f)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Open the database
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Printf("Database opened successfully: %s", cfg.DBPath)

	if err := applyDailyGoal(db, cfg); err != nil {
		log.Fatalf("Failed to apply configured daily goal: %v", err)
	}

	// 3. One-shot commands
	if *addSource != "" {
		addNewSource(db, *addSource, *sourceDeck)
		return
	}
	if *runSync {
		if err := sync.RunSync(db, cfg.ReposDir); err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		return
	}

	// 4. Serve the web UI
	server := web.NewServer(db, cfg.ReposDir)
	log.Printf("Starting web server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		log.Fatalf("Web server failed: %v", err)
	}
}

// applyDailyGoal stores an explicitly configured daily goal in the
// settings row, where the review planner reads it. An unconfigured goal
// leaves the stored preference alone.
func applyDailyGoal(db *storage.DB, cfg *config.Config) error {
	if !cfg.DailyGoalSet {
		return nil
	}
	settings, err := db.GetSettings()
	if err != nil {
		return err
	}
	if settings.DailyGoal == cfg.DailyGoal {
		return nil
	}
	settings.DailyGoal = cfg.DailyGoal
	return db.SaveSettings(settings)
}

// addNewSource registers a path or git URL as a card source, unless it
// is already registered.
func addNewSource(db *storage.DB, path, deckID string) {
	existing, err := db.FindSourceByPath(path)
	if err != nil {
		log.Fatalf("Failed to look up source %s: %v", path, err)
	}
	if existing != nil {
		log.Printf("Source already registered: %s", path)
		return
	}

	var deck *string
	if deckID != "" {
		if _, err := db.FindDeckByID(deckID); err != nil {
			log.Fatalf("Deck %s not found: %v", deckID, err)
		}
		deck = &deckID
	}

	sourceType := sync.DetectType(path)
	id, err := db.InsertSource(path, sourceType, deck)
	if err != nil {
		log.Fatalf("Failed to add source %s: %v", path, err)
	}
	log.Printf("Added %s source %d: %s", sourceType, id, path)
}
