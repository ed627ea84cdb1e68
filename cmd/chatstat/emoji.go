package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/render"
	"github.com/ktrang/chatstat/internal/stats"
)

func emojiCmd() *cobra.Command {
	var user string
	var top int

	cmd := &cobra.Command{
		Use:   "emoji <export.txt>",
		Short: "Most frequent emojis",
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

			render.FreqTable(os.Stdout, "Emoji", report.EmojiFrequency(), top)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Restrict to one sender")
	cmd.Flags().IntVar(&top, "top", 10, "Rows to show (0 = all)")

	return cmd
}
