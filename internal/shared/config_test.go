package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:3000" {
			t.Errorf("expected default base url, got %s", config.API.BaseURL)
		}
		if config.API.TimeoutSeconds != 15 {
			t.Errorf("expected 15 second timeout, got %d", config.API.TimeoutSeconds)
		}
		if config.Database.Path != "skillmorph.db" {
			t.Errorf("expected default database path, got %s", config.Database.Path)
		}
		if config.Catalog.PageSize != 6 {
			t.Errorf("expected page size 6, got %d", config.Catalog.PageSize)
		}
		if config.Catalog.HistoryEntries != 25 {
			t.Errorf("expected 25 history entries, got %d", config.Catalog.HistoryEntries)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Valid File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[api]
base_url = "https://api.skillmorph.dev"
timeout_seconds = 30

[database]
path = "/tmp/test.db"

[catalog]
page_size = 12
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if config.API.BaseURL != "https://api.skillmorph.dev" {
				t.Errorf("unexpected base url %s", config.API.BaseURL)
			}
			if config.Catalog.PageSize != 12 {
				t.Errorf("unexpected page size %d", config.Catalog.PageSize)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("Invalid TOML", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(path, []byte("not [valid toml"), 0644)

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for invalid toml")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("Creates From Template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created config does not parse: %v", err)
			}
			if config.API.BaseURL == "" {
				t.Error("expected template values present")
			}
		})

		t.Run("Refuses To Overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("existing"), 0644)

			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error for existing file")
			}
		})
	})

	t.Run("Timeout", func(t *testing.T) {
		if got := (APIConfig{TimeoutSeconds: 30}).Timeout(); got != 30*time.Second {
			t.Errorf("expected 30s, got %v", got)
		}
		if got := (APIConfig{}).Timeout(); got != 15*time.Second {
			t.Errorf("expected 15s fallback, got %v", got)
		}
	})
}
