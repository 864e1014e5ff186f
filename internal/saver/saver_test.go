package saver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFilenamePattern(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 42, 0, time.Local)
	got := Filename(ts)
	if got != "Screenshot_2024-03-07_09-05-42.png" {
		t.Fatalf("unexpected filename: %q", got)
	}
}

func TestPathFromURI(t *testing.T) {
	got, err := PathFromURI("file:///tmp/screenshot-abc.png")
	if err != nil {
		t.Fatalf("PathFromURI returned error: %v", err)
	}
	if got != "/tmp/screenshot-abc.png" {
		t.Fatalf("unexpected path: %q", got)
	}
}

func TestPathFromURIRejectsNonFileSchemes(t *testing.T) {
	for _, uri := range []string{
		"clipboard:",
		"https://example.com/shot.png",
		"data:image/png;base64,AAAA",
	} {
		if _, err := PathFromURI(uri); !errors.Is(err, ErrUnsupportedScheme) {
			t.Fatalf("uri %q: expected ErrUnsupportedScheme, got %v", uri, err)
		}
	}
}

func TestRelocateSameDeviceRenames(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "tmp")
	destDir := filepath.Join(dir, "pictures")
	for _, d := range []string{srcDir, destDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	src := filepath.Join(srcDir, "capture.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o600); err != nil {
		t.Fatal(err)
	}

	final, err := Relocate(src, destDir, "Screenshot_2024-03-07_09-05-42.png")
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}
	if final != filepath.Join(destDir, "Screenshot_2024-03-07_09-05-42.png") {
		t.Fatalf("unexpected final path: %q", final)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source to be gone, stat err: %v", err)
	}
	got, err := os.ReadFile(final)
	if err != nil || string(got) != "pixels" {
		t.Fatalf("destination content wrong: %q, %v", got, err)
	}
}

func TestRelocateDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "capture.png")
	if err := os.WriteFile(src, []byte("new"), 0o600); err != nil {
		t.Fatal(err)
	}
	taken := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(taken, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	final, err := Relocate(src, dir, "shot.png")
	if err != nil {
		t.Fatalf("Relocate returned error: %v", err)
	}
	if final != filepath.Join(dir, "shot (1).png") {
		t.Fatalf("expected suffixed path, got %q", final)
	}
	old, _ := os.ReadFile(taken)
	if string(old) != "old" {
		t.Fatalf("existing file was overwritten: %q", old)
	}
}

func TestRelocateMissingDestinationReportsStep(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "capture.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Relocate(src, filepath.Join(dir, "does-not-exist"), "shot.png")
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError, got %v", err)
	}
	if saveErr.Step != StepMetadataDestination {
		t.Fatalf("unexpected step: %q", saveErr.Step)
	}
	if _, statErr := os.Stat(src); statErr != nil {
		t.Fatalf("source must survive a failed relocation: %v", statErr)
	}
}

func TestRelocateMissingSourceReportsStep(t *testing.T) {
	dir := t.TempDir()

	_, err := Relocate(filepath.Join(dir, "gone.png"), dir, "shot.png")
	var saveErr *SaveError
	if !errors.As(err, &saveErr) {
		t.Fatalf("expected *SaveError, got %v", err)
	}
	if saveErr.Step != StepMetadataSource {
		t.Fatalf("unexpected step: %q", saveErr.Step)
	}
}

// The cross-device branch cannot be forced inside a single TempDir, so the
// copy+remove pair is exercised directly.
func TestCopyThenRemoveEquivalentToMove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "capture.png")
	dst := filepath.Join(dir, "final.png")
	if err := os.WriteFile(src, []byte("pixels"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Relocate(src, dir, "final.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source still present: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
}

func TestDefaultPicturesDirFromUserDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	shots := filepath.Join(home, "Bilder")
	if err := os.MkdirAll(shots, 0o755); err != nil {
		t.Fatal(err)
	}
	configDir := filepath.Join(home, ".config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "# xdg-user-dirs\nXDG_PICTURES_DIR=\"$HOME/Bilder\"\n"
	if err := os.WriteFile(filepath.Join(configDir, "user-dirs.dirs"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dir, err := DefaultPicturesDir()
	if err != nil {
		t.Fatalf("DefaultPicturesDir returned error: %v", err)
	}
	if dir != shots {
		t.Fatalf("unexpected pictures dir: %q", dir)
	}
}

func TestDefaultPicturesDirFallsBackToHomePictures(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	pictures := filepath.Join(home, "Pictures")
	if err := os.MkdirAll(pictures, 0o755); err != nil {
		t.Fatal(err)
	}

	dir, err := DefaultPicturesDir()
	if err != nil {
		t.Fatalf("DefaultPicturesDir returned error: %v", err)
	}
	if dir != pictures {
		t.Fatalf("unexpected pictures dir: %q", dir)
	}
}

func TestDefaultPicturesDirMissingEverywhere(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	if _, err := DefaultPicturesDir(); !errors.Is(err, ErrMissingSaveDir) {
		t.Fatalf("expected ErrMissingSaveDir, got %v", err)
	}
}
