package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/render"
	"github.com/ktrang/chatstat/internal/stats"
)

func heatmapCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "heatmap <export.txt>",
		Short: "Day-of-week x hour-of-day activity grid",
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

			render.HeatmapGrid(os.Stdout, report.Heatmap())
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict to one sender")

	return cmd
}
