package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Given Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("Nil Writer Defaults", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Error("expected a logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	t.Run("Creates Parent Directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("to file")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "to file") {
			t.Errorf("expected log line in file, got %q", string(content))
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	child := WithLogger(logger, "component", "catalog")
	child.Info("tagged")

	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected key-value pair in output, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")

	if strings.Contains(buf.String(), "suppressed") {
		t.Error("expected info output suppressed at error level")
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid format, got %q", a)
	}
}
