package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ktrang/chatstat/internal/cache"
	"github.com/ktrang/chatstat/internal/config"
	"github.com/ktrang/chatstat/internal/parse"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [export.txt]",
		Short: "Self-check: verify config, cache, and optionally inspect an export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Configuration ===")
			fmt.Printf("  Pattern:       %s (known: auto, %s)\n", cfg.Pattern, strings.Join(parse.PatternNames(), ", "))
			fmt.Printf("  Date order:    %s\n", cfg.DateOrder)
			fmt.Printf("  Media token:   %q\n", cfg.MediaToken)
			fmt.Printf("  Stopwords:     %s (built-in: %s)\n", cfg.StopwordLang, strings.Join(parse.StopwordLangs(), ", "))
			if cfg.StopwordFile != "" {
				checkFile("Stopword file", cfg.StopwordFile)
			}

			pcfg, err := cfg.ParseConfig()
			if err != nil {
				fmt.Printf("  Status: INVALID (%v)\n", err)
				return nil
			}
			fmt.Println("  Status: OK")

			fmt.Println("\n=== Cache ===")
			fmt.Printf("  Path: %s\n", cfg.CachePath)
			if _, err := os.Stat(cfg.CachePath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (created on first run)")
			} else {
				db, err := cache.OpenDB(cfg.CachePath)
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				defer db.Close()

				exports, err := db.ExportCount()
				if err != nil {
					return fmt.Errorf("count exports: %w", err)
				}
				messages, err := db.MessageCount()
				if err != nil {
					return fmt.Errorf("count messages: %w", err)
				}
				fmt.Printf("  Exports:  %d\n", exports)
				fmt.Printf("  Messages: %d\n", messages)
				if info, err := os.Stat(cfg.CachePath); err == nil {
					fmt.Printf("  Size:     %.1f MB\n", float64(info.Size())/1024/1024)
				}
			}

			if len(args) == 0 {
				return nil
			}

			// parse the export fresh, bypassing the cache, so the numbers
			// reflect the current parser and configuration
			fmt.Println("\n=== Export ===")
			checkFile("Path", args[0])
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}

			res, err := parse.Parse(string(data), pcfg)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			senders := make(map[string]struct{})
			system, media := 0, 0
			for _, m := range res.Messages {
				if m.IsSystem() {
					system++
					continue
				}
				senders[m.Sender] = struct{}{}
				if m.IsMedia {
					media++
				}
			}
			fmt.Printf("  Messages: %d (%d system, %d media)\n", len(res.Messages), system, media)
			fmt.Printf("  Senders:  %d\n", len(senders))
			fmt.Printf("  Language: %s\n", parse.DetectLang(res.Messages))

			if len(res.Warnings) == 0 {
				fmt.Println("  Warnings: none")
			} else {
				fmt.Printf("  Warnings: %d\n", len(res.Warnings))
				for _, w := range res.Warnings {
					fmt.Printf("    %s\n", w)
				}
			}
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
