package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidLevel(t *testing.T) {
	cfg := Config{Logging: LoggingConfig{Level: "verbose"}, Search: SearchConfig{Scoring: "uniform"}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid logging level")
	}

	expected := `logging.level must be debug, info, warn, or error, got "verbose"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		t.Run("level="+level, func(t *testing.T) {
			cfg := Config{
				Logging: LoggingConfig{Level: level},
				Search:  SearchConfig{Scoring: "uniform"},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid level %q: %v", level, err)
			}
		})
	}
}

func TestValidate_InvalidScoring(t *testing.T) {
	cfg := Config{Search: SearchConfig{Scoring: "bm25"}}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid scoring")
	}

	expected := `search.scoring must be "uniform" or "frequency", got "bm25"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Ingest.Concurrency != 4 {
		t.Errorf("expected Concurrency=4, got %d", cfg.Ingest.Concurrency)
	}
	if cfg.Search.SnippetRadius != 50 {
		t.Errorf("expected SnippetRadius=50, got %d", cfg.Search.SnippetRadius)
	}
	if cfg.Search.Scoring != "uniform" {
		t.Errorf("expected Scoring=uniform, got %q", cfg.Search.Scoring)
	}
	if cfg.Guard.Disabled {
		t.Error("guard should be enabled by default")
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Ingest: IngestConfig{Concurrency: 8},
		Search: SearchConfig{SnippetRadius: 25, Scoring: "frequency"},
	}
	cfg.ApplyDefaults()

	if cfg.Ingest.Concurrency != 8 {
		t.Errorf("expected Concurrency=8, got %d", cfg.Ingest.Concurrency)
	}
	if cfg.Search.SnippetRadius != 25 {
		t.Errorf("expected SnippetRadius=25, got %d", cfg.Search.SnippetRadius)
	}
	if cfg.Search.Scoring != "frequency" {
		t.Errorf("expected Scoring=frequency, got %q", cfg.Search.Scoring)
	}
}

// chdir switches the working directory for the duration of the test,
// standing in for t.Chdir which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_FromFile(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.MkdirAll("config", 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FS_LOG_LEVEL", "debug")
	yaml := `
logging:
  level: ${FS_LOG_LEVEL:-info}
  file: app.log
ingest:
  concurrency: 2
search:
  snippet_radius: 30
  scoring: frequency
guard:
  blocked_keys: ["ctrl+p"]
`
	if err := os.WriteFile(filepath.Join("config", "testenv.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("testenv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want env-expanded debug", cfg.Logging.Level)
	}
	if cfg.Logging.File != "app.log" {
		t.Errorf("File = %q", cfg.Logging.File)
	}
	if cfg.Ingest.Concurrency != 2 {
		t.Errorf("Concurrency = %d", cfg.Ingest.Concurrency)
	}
	if cfg.Search.SnippetRadius != 30 {
		t.Errorf("SnippetRadius = %d", cfg.Search.SnippetRadius)
	}
	if len(cfg.Guard.BlockedKeys) != 1 || cfg.Guard.BlockedKeys[0] != "ctrl+p" {
		t.Errorf("BlockedKeys = %v", cfg.Guard.BlockedKeys)
	}
}

func TestLoad_EnvDefaultValue(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.MkdirAll("config", 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := "logging:\n  level: ${FS_UNSET_LEVEL:-warn}\n"
	if err := os.WriteFile(filepath.Join("config", "testenv.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("testenv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want fallback warn", cfg.Logging.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("nonexistent")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ingest.Concurrency != 4 || cfg.Search.SnippetRadius != 50 {
		t.Errorf("missing file should fall back to defaults, got %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.MkdirAll("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("config", "testenv.yaml"), []byte("logging: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load("testenv"); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}
