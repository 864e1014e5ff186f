package saver

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPicturesDir resolves the XDG pictures directory: the
// XDG_PICTURES_DIR entry from ~/.config/user-dirs.dirs when present,
// otherwise ~/Pictures when that directory exists. When neither resolves the
// capture has no destination and ErrMissingSaveDir is returned.
func DefaultPicturesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingSaveDir, err)
	}

	if dir := picturesDirFromUserDirs(home); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	fallback := filepath.Join(home, "Pictures")
	if info, err := os.Stat(fallback); err == nil && info.IsDir() {
		return fallback, nil
	}

	return "", ErrMissingSaveDir
}

// picturesDirFromUserDirs parses the xdg-user-dirs config, which stores lines
// shaped like XDG_PICTURES_DIR="$HOME/Pictures".
func picturesDirFromUserDirs(home string) string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if strings.TrimSpace(configHome) == "" {
		configHome = filepath.Join(home, ".config")
	}

	file, err := os.Open(filepath.Join(configHome, "user-dirs.dirs"))
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "XDG_PICTURES_DIR=") {
			continue
		}
		value := strings.TrimPrefix(line, "XDG_PICTURES_DIR=")
		value = strings.Trim(value, `"`)
		value = strings.ReplaceAll(value, "$HOME", home)
		if value == "" || !filepath.IsAbs(value) {
			return ""
		}
		return filepath.Clean(value)
	}
	return ""
}
