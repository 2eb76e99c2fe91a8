package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

func TestSetupLogging_DiscardByDefault(t *testing.T) {
	restoreLogger(t)

	closer, err := setupLogging("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closer != nil {
		t.Error("Expected nil closer when no log file is set")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLogging_File(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "arrow-rush.log")

	closer, err := setupLogging(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closer == nil {
		t.Fatal("Expected a closer for the log file")
	}

	log.Println("Test log message")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "Test log message") {
		t.Errorf("Log file missing message, got %q", content)
	}
	if !strings.Contains(string(content), "[APP] logging started") {
		t.Errorf("Log file missing start banner, got %q", content)
	}
}
