package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}

	logger.Info("capture finished", logging.String("path", "/tmp/shot.png"))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "cosmic-screenshot.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "capture finished") {
		t.Fatalf("missing message in %q", line)
	}
	if !strings.Contains(line, "path=/tmp/shot.png") {
		t.Fatalf("missing attribute in %q", line)
	}
}

func TestConsoleHandlerFormatting(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "console.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	scoped := logging.NewComponentLogger(logger, "portal")
	scoped.Info("request sent", logging.Bool("interactive", true), logging.String("note", "two words"))
	scoped.Debug("suppressed")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	line := string(content)
	if strings.Contains(line, "suppressed") {
		t.Fatalf("debug line should be filtered at info level: %q", line)
	}
	if !strings.Contains(line, " INFO portal: request sent") {
		t.Fatalf("unexpected line shape: %q", line)
	}
	if !strings.Contains(line, "interactive=true") {
		t.Fatalf("missing bool attribute: %q", line)
	}
	if !strings.Contains(line, `note="two words"`) {
		t.Fatalf("expected quoted value with spaces: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no source location at info level: %q", line)
	}
}

func TestJSONHandlerShape(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "json.log")

	logger, err := logging.New(logging.Options{Format: "json", Level: "warn", FilePath: logPath})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("portal slow", logging.Int("attempt", 2))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(content, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, content)
	}
	if entry["msg"] != "portal slow" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "warn" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("goes nowhere", logging.Error(os.ErrNotExist))
}
