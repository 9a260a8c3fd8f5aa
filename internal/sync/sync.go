// Package sync reconciles registered card sources into the store: new
// cards found in source files are inserted into the source's deck, cards
// that vanished from the files are removed. Review state of surviving
// cards is never touched.
package sync

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conorfennell/vocabdrill/internal/cardfile"
	"github.com/conorfennell/vocabdrill/internal/fingerprint"
	"github.com/conorfennell/vocabdrill/internal/gitsource"
	"github.com/conorfennell/vocabdrill/internal/storage"
)

// SourceType values accepted for a registered source.
const (
	TypeLocal = "local"
	TypeGit   = "git"
)

// DetectType classifies a source path as a git URL or a local directory.
func DetectType(path string) string {
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") ||
		strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return TypeGit
	}
	return TypeLocal
}

// RunSync iterates over all registered sources and reconciles them.
func RunSync(db *storage.DB, reposDir string) error {
	slog.Info("Starting sync process for all sources")
	sources, err := db.GetAllSources()
	if err != nil {
		return fmt.Errorf("get sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with --add-source <path/or/url.git>")
		return nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("Syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		sourceToReconcile := source

		switch source.Type {
		case TypeLocal:
			reconcileSource(db, &sourceToReconcile)
		case TypeGit:
			localRepoPath, err := gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}

			if err := gitsource.Sync(source.Path, localRepoPath); err != nil {
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}

			sourceToReconcile.Path = localRepoPath
			reconcileSource(db, &sourceToReconcile)
		}
	}
	slog.Info("Sync process complete")
	return nil
}

func reconcileSource(db *storage.DB, source *storage.Source) {
	var deckID *string
	if source.DeckID.Valid {
		id := source.DeckID.String
		deckID = &id
	}

	existing, err := db.GetVocabsBySourceID(source.ID)
	if err != nil {
		slog.Error("Error getting cards for source", "source_id", source.ID, "error", err)
		return
	}

	var parsed, inserted int
	var parseErrors []error
	found := make(map[string]bool)
	now := time.Now()

	walkErr := filepath.WalkDir(source.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		entries, parseErr := cardfile.ParseFile(path)
		if parseErr != nil {
			parseErrors = append(parseErrors, fmt.Errorf("parsing %s: %w", path, parseErr))
			return nil
		}
		for _, entry := range entries {
			fp := fingerprint.Hash(entry.Front, entry.Back)
			parsed++
			found[fp] = true

			if _, ok := existing[fp]; ok {
				continue
			}
			slog.Info("New card found, inserting", "fingerprint", fp)
			if _, insertErr := db.InsertSourceVocab(entry.Front, entry.Back, deckID, fp, source.ID, now); insertErr != nil {
				parseErrors = append(parseErrors, fmt.Errorf("db insert for %s: %w", fp, insertErr))
			} else {
				inserted++
			}
		}
		return nil
	})

	if walkErr != nil {
		slog.Error("Error walking directory", "path", source.Path, "error", walkErr)
		return
	}

	var orphaned int
	for fp, vocabID := range existing {
		if found[fp] {
			continue
		}
		slog.Info("Orphaned card, deleting", "fingerprint", fp)
		orphaned++
		if err := db.DeleteVocab(vocabID); err != nil {
			slog.Warn("Failed to delete orphaned card", "fingerprint", fp, "error", err)
		}
	}

	if err := db.UpdateSourceLastScanned(source.ID, now); err != nil {
		slog.Warn("Failed to update last scanned for source", "source_id", source.ID, "error", err)
	}

	slog.Info("reconciliation complete",
		"path", source.Path,
		"parsed_cards", parsed,
		"inserted", inserted,
		"orphaned_deleted", orphaned,
		"errors", len(parseErrors),
	)
}

func gitURLToLocalPath(baseDir, repoURL string) (string, error) {
	parsedURL, err := url.Parse(repoURL)
	if err != nil || (parsedURL.Scheme != "https" && parsedURL.Scheme != "http") {
		if strings.Contains(repoURL, "@") {
			parts := strings.Split(repoURL, ":")
			if len(parts) == 2 {
				hostAndUser := strings.Split(parts[0], "@")
				if len(hostAndUser) == 2 {
					host := hostAndUser[1]
					repoPath := strings.TrimSuffix(parts[1], ".git")
					return filepath.Join(baseDir, host, repoPath), nil
				}
			}
		}
		return "", fmt.Errorf("could not parse git URL: %s", repoURL)
	}

	sanitizedPath := strings.TrimSuffix(parsedURL.Path, ".git")
	return filepath.Join(baseDir, parsedURL.Host, sanitizedPath), nil
}
