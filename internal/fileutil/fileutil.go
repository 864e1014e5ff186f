package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile streams src to dst, carrying over the source file mode and syncing
// dst before close. A partial dst is removed on failure so an aborted copy
// never leaves a truncated screenshot behind.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if err := copyAndSync(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

func copyAndSync(out *os.File, in io.Reader) error {
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// UniquePath returns path if nothing exists there, otherwise the first
// "name (N).ext" variant that is free. It gives up after a bounded number of
// probes rather than scanning a crowded directory forever.
func UniquePath(path string) (string, error) {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 1; n <= 1000; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Lstat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("no free filename near %s", path)
}
