package main

import (
	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/stats"
	"github.com/ktrang/chatstat/internal/tui"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <export.txt>",
		Short: "Interactive report: browse per-sender statistics",
		Long:  `Opens a TUI with the senders ranked by activity on the left and totals, peak activity, top words, and top emojis for the selection on the right.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cfg, err := loadExport(args[0])
			if err != nil {
				return err
			}

			return tui.Run(res.Messages, res.Warnings, stats.Options{
				IncludeSystem: cfg.IncludeSystem,
			})
		},
	}
}
