package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/capture"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &captureFlags{}

	ctx := newCommandContext(&configFlag)

	const longHelp = "cosmic-screenshot asks the desktop screenshot portal for a capture, moves the\n" +
		"result into your pictures directory (or --save-dir), and posts a desktop\n" +
		"notification with the outcome."

	rootCmd := &cobra.Command{
		Use:           "cosmic-screenshot",
		Short:         "Take a screenshot through the desktop portal",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.register(rootCmd)

	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newTestNotifyCommand(ctx))

	return rootCmd
}

// captureFlags are the portal/request flags. Each boolean accepts an optional
// explicit value: --notify, --notify=true, and --notify=false all parse.
type captureFlags struct {
	interactive bool
	modal       bool
	notify      bool
	saveDir     string
}

func (f *captureFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.interactive, "interactive", true, "Enable interactive mode in the portal")
	fs.BoolVar(&f.modal, "modal", true, "Enable modal mode in the portal")
	fs.BoolVar(&f.notify, "notify", true, "Send a notification with the path to the saved screenshot")
	fs.StringVarP(&f.saveDir, "save-dir", "s", "", "Directory to save the screenshot to when not interactive")
	for _, name := range []string{"interactive", "modal", "notify"} {
		fs.Lookup(name).NoOptDefVal = "true"
	}
}

// resolveCaptureOptions merges config defaults with flags; an explicitly set
// flag wins over the config file.
func resolveCaptureOptions(cfg *config.Config, flags *captureFlags, changed func(string) bool) (capture.Options, bool) {
	opts := capture.Options{
		Interactive: cfg.Capture.Interactive,
		Modal:       cfg.Capture.Modal,
		SaveDir:     flags.saveDir,
	}
	if changed("interactive") {
		opts.Interactive = flags.interactive
	}
	if changed("modal") {
		opts.Modal = flags.modal
	}

	notifyEnabled := cfg.Notifications.Enabled
	if changed("notify") {
		notifyEnabled = flags.notify
	}
	return opts, notifyEnabled
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
