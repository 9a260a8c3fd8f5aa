package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Failed to parse empty flags: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBPath != "vocabdrill.db" {
		t.Errorf("Expected default db path vocabdrill.db, got %q", cfg.DBPath)
	}
	if cfg.DailyGoal != 10 {
		t.Errorf("Expected default daily goal 10, got %d", cfg.DailyGoal)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("VOCABDRILL_ADDR", ":9999")
	t.Setenv("VOCABDRILL_DAILY_GOAL", "25")

	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Failed to parse empty flags: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Expected env addr :9999, got %q", cfg.Addr)
	}
	if cfg.DailyGoal != 25 {
		t.Errorf("Expected env daily goal 25, got %d", cfg.DailyGoal)
	}
}

func TestLoadFlagBeatsEnv(t *testing.T) {
	t.Setenv("VOCABDRILL_ADDR", ":9999")

	f := Flags()
	if err := f.Parse([]string{"--addr", ":7777"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Addr != ":7777" {
		t.Errorf("Expected flag addr :7777, got %q", cfg.Addr)
	}
}

func TestLoadMarksExplicitDailyGoal(t *testing.T) {
	testCases := []struct {
		name string
		env  string
		args []string
		want bool
	}{
		{"flag default", "", nil, false},
		{"set via env", "25", nil, true},
		{"set via flag", "", []string{"--daily_goal", "25"}, true},
		{"flag set to the default value", "", []string{"--daily_goal", "10"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.env != "" {
				t.Setenv("VOCABDRILL_DAILY_GOAL", tc.env)
			}
			f := Flags()
			if err := f.Parse(tc.args); err != nil {
				t.Fatalf("Failed to parse flags: %v", err)
			}
			cfg, err := Load(f)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.DailyGoalSet != tc.want {
				t.Errorf("Expected DailyGoalSet %v, got %v", tc.want, cfg.DailyGoalSet)
			}
		})
	}
}

func TestLoadRejectsOutOfRangeGoal(t *testing.T) {
	t.Setenv("VOCABDRILL_DAILY_GOAL", "900")

	f := Flags()
	if err := f.Parse(nil); err != nil {
		t.Fatalf("Failed to parse empty flags: %v", err)
	}

	if _, err := Load(f); err == nil {
		t.Error("Expected an error for a daily goal above 200")
	}
}
