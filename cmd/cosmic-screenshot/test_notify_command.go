package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/notify"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Notifications.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Notifications are disabled in the configuration")
				return nil
			}

			if err := notify.NewService(cfg).Test(cmd.Context()); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
