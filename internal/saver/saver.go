package saver

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/fileutil"
)

var (
	// ErrUnsupportedScheme marks capture URIs the saver cannot handle.
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")
	// ErrMissingSaveDir marks a capture with no usable destination directory.
	ErrMissingSaveDir = errors.New("no save directory available")
)

// Relocation sub-steps, recorded in SaveError so a failure names the exact
// filesystem operation that broke.
const (
	StepMetadataDestination = "metadata-destination"
	StepMetadataSource      = "metadata-source"
	StepCopy                = "copy"
	StepRemoveTemp          = "remove-temp"
	StepRename              = "rename"
)

// SaveError wraps an I/O failure from one relocation sub-step.
type SaveError struct {
	Step string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save screenshot (%s): %v", e.Step, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Filename derives the destination filename from a local timestamp.
func Filename(ts time.Time) string {
	return "Screenshot_" + ts.Format("2006-01-02_15-04-05") + ".png"
}

// PathFromURI extracts the filesystem path from a portal capture URI. Any
// scheme other than file is rejected before the filesystem is touched.
func PathFromURI(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse capture URI: %w", err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
	if parsed.Path == "" {
		return "", fmt.Errorf("%w: empty path in %q", ErrUnsupportedScheme, raw)
	}
	return parsed.Path, nil
}

// Relocate moves the temporary capture at src into destDir under name and
// returns the final absolute path. When src and destDir live on the same
// filesystem device the move is a single rename; across devices it degrades
// to copy plus delete, since a rename would fail (or leave the temp file
// occupying its mount) when crossing mounts such as tmpfs and the home
// volume. An existing file under name is never overwritten; a numbered
// variant is chosen instead.
func Relocate(src, destDir, name string) (string, error) {
	destDev, err := deviceOf(destDir)
	if err != nil {
		return "", &SaveError{Step: StepMetadataDestination, Err: err}
	}
	srcDev, err := deviceOf(src)
	if err != nil {
		return "", &SaveError{Step: StepMetadataSource, Err: err}
	}

	target, err := fileutil.UniquePath(filepath.Join(destDir, name))
	if err != nil {
		return "", &SaveError{Step: StepMetadataDestination, Err: err}
	}

	if srcDev != destDev {
		if err := fileutil.CopyFile(src, target); err != nil {
			return "", &SaveError{Step: StepCopy, Err: err}
		}
		if err := os.Remove(src); err != nil {
			return "", &SaveError{Step: StepRemoveTemp, Err: err}
		}
		return target, nil
	}

	if err := os.Rename(src, target); err != nil {
		return "", &SaveError{Step: StepRename, Err: err}
	}
	return target, nil
}

func deviceOf(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return uint64(st.Dev), nil
}
