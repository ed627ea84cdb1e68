package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/cache"
	"github.com/ktrang/chatstat/internal/config"
	"github.com/ktrang/chatstat/internal/parse"
	"github.com/ktrang/chatstat/internal/render"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatstat",
		Short:   "Chat export statistics - parse WhatsApp-style exports and chart activity",
		Version: version,
	}

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(heatmapCmd())
	rootCmd.AddCommand(wordsCmd())
	rootCmd.AddCommand(emojiCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadExport parses (or loads from cache) the export at path and surfaces
// any parse warnings on stderr. Every subcommand starts here.
func loadExport(path string) (*parse.Result, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	pcfg, err := cfg.ParseConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	db, err := cache.OpenDB(cfg.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	defer db.Close()

	res, err := cache.LoadOrParse(db, path, pcfg)
	if err != nil {
		return nil, nil, err
	}

	render.Warnings(os.Stderr, res.Warnings)
	return res, cfg, nil
}
