// Package config loads the application configuration by layering, in
// order of increasing precedence: built-in flag defaults, an optional
// YAML file, VOCABDRILL_-prefixed environment variables, and explicitly
// set command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

const envPrefix = "VOCABDRILL_"

// Config holds everything the process needs at startup.
type Config struct {
	Addr      string `koanf:"addr" validate:"required"`
	DBPath    string `koanf:"db_path" validate:"required"`
	ReposDir  string `koanf:"repos_dir" validate:"required"`
	DailyGoal int    `koanf:"daily_goal" validate:"min=1,max=200"`

	// DailyGoalSet records whether daily_goal came from the file, the
	// environment or an explicit flag, as opposed to the flag default.
	// Only an explicitly configured goal overwrites the stored settings.
	DailyGoalSet bool `koanf:"-"`
}

// Flags returns the flag set the loader understands. Callers parse it
// (adding their own command flags first if needed) and hand it to Load.
func Flags() *flag.FlagSet {
	f := flag.NewFlagSet("vocabdrill", flag.ContinueOnError)
	f.String("config", "", "Path to a YAML config file")
	f.String("addr", ":8080", "Address for the web server to listen on")
	f.String("db_path", "vocabdrill.db", "Path to the SQLite database file")
	f.String("repos_dir", "repos", "Directory where git sources are checked out")
	f.Int("daily_goal", 10, "Default number of cards per review session")
	return f
}

// Load builds the configuration from the parsed flag set.
func Load(f *flag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %s does not exist", path)
			}
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// VOCABDRILL_DB_PATH → db_path
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	// The file and env layers are loaded by now; anything present here
	// was configured explicitly rather than filled from a flag default.
	goalSet := k.Exists("daily_goal")

	// Flags last: explicitly set flags win, untouched flags only fill
	// keys nothing else provided.
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.DailyGoalSet = goalSet || f.Changed("daily_goal")

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
