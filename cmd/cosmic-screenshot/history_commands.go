package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded captures",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cmd.Flags().GetInt("limit")
			if err != nil {
				return err
			}
			return runHistoryList(cmd, ctx, limit)
		},
	}
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 for all)")

	historyCmd.AddCommand(newHistoryClearCommand(ctx))
	return historyCmd
}

func runHistoryList(cmd *cobra.Command, ctx *commandContext, limit int) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No captures recorded")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		location := entry.Path
		if entry.Outcome == history.OutcomeFailed && entry.Error != "" {
			location = entry.Error
		}
		rows = append(rows, []string{
			entry.CreatedAt.Local().Format(time.DateTime),
			string(entry.Outcome),
			yesNo(entry.Interactive),
			location,
		})
	}

	headers := []string{"Time", "Outcome", "Interactive", "Location"}
	fmt.Fprint(out, renderTable(headers, rows, !stdoutIsTerminal()))
	return nil
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded capture history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			deleted, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d recorded captures\n", deleted)
			return nil
		},
	}
}
