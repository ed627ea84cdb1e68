package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ktrang/chatstat/internal/render"
	"github.com/ktrang/chatstat/internal/stats"
)

func timelineCmd() *cobra.Command {
	var user string
	var daily bool
	var width int

	cmd := &cobra.Command{
		Use:   "timeline <export.txt>",
		Short: "Message counts over time as a bar chart",
		Long:  `Monthly by default, per calendar day with --daily. Months or days with no messages show as explicit zero bars so gaps are visible.`,
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

			if width <= 0 {
				width = barWidth()
			}

			if daily {
				render.DailyBars(os.Stdout, report.DailyTimeline(), width)
			} else {
				render.MonthlyBars(os.Stdout, report.MonthlyTimeline(), width)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict to one sender")
	cmd.Flags().BoolVar(&daily, "daily", false, "One bar per calendar day instead of per month")
	cmd.Flags().IntVar(&width, "width", 0, "Bar width in columns (0 = autodetect)")

	return cmd
}

// barWidth leaves room for the label and count columns.
func barWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 30 {
		return w - 20
	}
	return 40
}
