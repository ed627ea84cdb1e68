package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/render"
	"github.com/ktrang/chatstat/internal/stats"
)

func statsCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "stats <export.txt>",
		Short: "Per-user message, word, media, and emoji counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cfg, err := loadExport(args[0])
			if err != nil {
				return err
			}

			report, err := stats.New(res.Messages, stats.Options{
				Sender:        user,
				IncludeSystem: cfg.IncludeSystem,
			})
			if err != nil {
				return err
			}

			first, last := report.Span()
			fmt.Fprintf(os.Stderr, "%d messages, %s - %s\n\n",
				report.TotalMessages(),
				first.Format("2 Jan 2006"), last.Format("2 Jan 2006"))

			render.UserTable(os.Stdout, report.PerUser())
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict to one sender")

	return cmd
}
