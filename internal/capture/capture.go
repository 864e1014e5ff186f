package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/history"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/logging"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/portal"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/saver"
)

// ErrCaptureInProgress reports that another capture holds the lock, usually
// because a portal picker dialog is already open.
var ErrCaptureInProgress = errors.New("another capture is already in progress")

// Status classifies a finished capture.
type Status string

const (
	StatusSaved     Status = "saved"
	StatusCancelled Status = "cancelled"
)

// Result is the outcome of a capture run.
type Result struct {
	Status Status
	// Path is the final screenshot location; empty when cancelled.
	Path string
}

// Screenshotter is the portal surface the runner needs.
type Screenshotter interface {
	Screenshot(ctx context.Context, opts portal.Options) (string, error)
}

// Recorder is the history surface the runner needs. A nil Recorder disables
// history.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) (*history.Entry, error)
	Prune(ctx context.Context, keep int) error
}

// Options control a single capture run.
type Options struct {
	Interactive bool
	Modal       bool
	// SaveDir overrides the configured destination for non-interactive
	// captures. When it is not an existing directory the pictures directory
	// fallback applies.
	SaveDir string
}

// Runner wires the portal, the saver, and the history store into one capture
// flow.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	portal Screenshotter
	store  Recorder
}

// NewRunner builds a capture runner. store may be nil.
func NewRunner(cfg *config.Config, logger *slog.Logger, screenshotter Screenshotter, store Recorder) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "capture"),
		portal: screenshotter,
		store:  store,
	}
}

// Run performs one capture. Cancellation by the user is a neutral outcome
// reported through Result, not an error.
func (r *Runner) Run(ctx context.Context, opts Options) (Result, error) {
	// Resolve the destination up front so a doomed capture fails before the
	// portal dialog ever appears. Interactive captures keep the portal's own
	// destination choice.
	var destDir string
	if !opts.Interactive {
		var err error
		destDir, err = r.resolveSaveDir(opts.SaveDir)
		if err != nil {
			r.record(ctx, opts, history.Entry{Outcome: history.OutcomeFailed, Error: err.Error()})
			return Result{}, err
		}
	}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return Result{}, err
	}
	lock := flock.New(r.cfg.CaptureLockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, fmt.Errorf("acquire capture lock: %w", err)
	}
	if !locked {
		return Result{}, ErrCaptureInProgress
	}
	defer func() { _ = lock.Unlock() }()

	uri, err := r.portal.Screenshot(ctx, portal.Options{
		Interactive: opts.Interactive,
		Modal:       opts.Modal,
	})
	if err != nil {
		if errors.Is(err, portal.ErrCancelled) {
			r.logger.Info("screenshot cancelled")
			r.record(ctx, opts, history.Entry{Outcome: history.OutcomeCancelled})
			return Result{Status: StatusCancelled}, nil
		}
		r.record(ctx, opts, history.Entry{Outcome: history.OutcomeFailed, Error: err.Error()})
		return Result{}, err
	}
	r.logger.Debug("portal returned capture", logging.String("uri", uri))

	src, err := saver.PathFromURI(uri)
	if err != nil {
		r.record(ctx, opts, history.Entry{Outcome: history.OutcomeFailed, Error: err.Error()})
		return Result{}, err
	}

	final := src
	if !opts.Interactive {
		final, err = saver.Relocate(src, destDir, saver.Filename(time.Now()))
		if err != nil {
			r.record(ctx, opts, history.Entry{Outcome: history.OutcomeFailed, Error: err.Error()})
			return Result{}, err
		}
	}

	r.logger.Info("screenshot saved", logging.String("path", final))
	r.record(ctx, opts, history.Entry{Outcome: history.OutcomeSaved, Path: final})
	return Result{Status: StatusSaved, Path: final}, nil
}

func (r *Runner) resolveSaveDir(override string) (string, error) {
	for _, candidate := range []string{override, r.cfg.Paths.SaveDir} {
		if candidate == "" {
			continue
		}
		expanded, err := config.ExpandPath(candidate)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(expanded)
		if err == nil && info.IsDir() {
			return expanded, nil
		}
		r.logger.Warn("save directory unusable, falling back",
			logging.String("save_dir", expanded))
	}
	return saver.DefaultPicturesDir()
}

// record persists a history entry on a best-effort basis.
func (r *Runner) record(ctx context.Context, opts Options, entry history.Entry) {
	if r.store == nil || !r.cfg.History.Enabled {
		return
	}
	entry.Interactive = opts.Interactive
	entry.Modal = opts.Modal
	if _, err := r.store.Record(ctx, entry); err != nil {
		r.logger.Warn("record capture history", logging.Error(err))
		return
	}
	if err := r.store.Prune(ctx, r.cfg.History.Keep); err != nil {
		r.logger.Warn("prune capture history", logging.Error(err))
	}
}
