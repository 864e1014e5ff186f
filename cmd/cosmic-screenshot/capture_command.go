package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/capture"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/history"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/logging"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/notify"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/portal"
)

// runCapture performs the default capture flow. Capture and notification
// failures are logged and notified but deliberately do not become a non-zero
// exit: the portal dialog disappearing with an error dialog of its own is
// worse than a quiet log line.
func runCapture(cmd *cobra.Command, cmdCtx *commandContext, flags *captureFlags) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger := cmdCtx.ensureLogger()

	opts, notifyEnabled := resolveCaptureOptions(cfg, flags, cmd.Flags().Changed)

	notifyCfg := *cfg
	notifyCfg.Notifications.Enabled = notifyEnabled
	notifier := notify.NewService(&notifyCfg)

	var store capture.Recorder
	if cfg.History.Enabled {
		historyStore, err := history.Open(cfg)
		if err != nil {
			logger.Warn("capture history unavailable", logging.Error(err))
		} else {
			defer historyStore.Close()
			store = historyStore
		}
	}

	ctx := cmd.Context()

	client, err := portal.Connect()
	if err != nil {
		logger.Error("screenshot failed", logging.Error(err))
		if notifyErr := notifier.CaptureFailed(ctx, err); notifyErr != nil {
			logger.Error("post failure notification", logging.Error(notifyErr))
		}
		return nil
	}
	defer client.Close()

	runner := capture.NewRunner(cfg, logger, client, store)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		logger.Error("screenshot failed", logging.Error(err))
		if notifyErr := notifier.CaptureFailed(ctx, err); notifyErr != nil {
			logger.Error("post failure notification", logging.Error(notifyErr))
		}
		return nil
	}

	switch result.Status {
	case capture.StatusCancelled:
		if notifyErr := notifier.CaptureCancelled(ctx); notifyErr != nil {
			logger.Error("post cancellation notification", logging.Error(notifyErr))
		}
	default:
		fmt.Fprintln(cmd.OutOrStdout(), result.Path)
		if notifyErr := notifier.CaptureSaved(ctx, result.Path); notifyErr != nil {
			logger.Error("post completion notification", logging.Error(notifyErr))
		}
	}
	return nil
}
