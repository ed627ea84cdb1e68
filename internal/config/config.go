package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ktrang/chatstat/internal/parse"
)

type Config struct {
	Pattern       string `toml:"pattern"`        // auto|slash|bracket|dot|iso
	DateOrder     string `toml:"date_order"`     // day-first|month-first
	MediaToken    string `toml:"media_token"`    // attachment placeholder
	StopwordLang  string `toml:"stopword_lang"`  // auto|en|es|fr|de
	StopwordFile  string `toml:"stopword_file"`  // extra words, one per line
	KeepNumeric   bool   `toml:"keep_numeric"`   // keep digit-only tokens
	IncludeSystem bool   `toml:"include_system"` // count notifications in timelines
	CachePath     string `toml:"cache_path"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Pattern:      "auto",
		DateOrder:    "day-first",
		MediaToken:   parse.DefaultMediaToken,
		StopwordLang: parse.LangAuto,
		CachePath:    filepath.Join(home, ".config", "chatstat", "cache.db"),
	}

	cfgPath := filepath.Join(home, ".config", "chatstat", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.CachePath = expandHome(cfg.CachePath, home)
	cfg.StopwordFile = expandHome(cfg.StopwordFile, home)

	return cfg, nil
}

// ParseConfig materializes and validates the parser configuration, reading
// the extra stopword file if one is set. Validation failures here are fatal;
// nothing should be parsed under a configuration we do not understand.
func (c *Config) ParseConfig() (parse.Config, error) {
	pcfg := parse.Config{
		Pattern:      c.Pattern,
		MediaToken:   c.MediaToken,
		StopwordLang: c.StopwordLang,
		KeepNumeric:  c.KeepNumeric,
	}

	switch c.DateOrder {
	case "", "day-first":
	case "month-first":
		pcfg.MonthFirst = true
	default:
		return parse.Config{}, fmt.Errorf("unknown date_order %q (day-first or month-first)", c.DateOrder)
	}

	if c.StopwordFile != "" {
		extra, err := readWordFile(c.StopwordFile)
		if err != nil {
			return parse.Config{}, fmt.Errorf("stopword_file: %w", err)
		}
		if len(extra) == 0 {
			return parse.Config{}, fmt.Errorf("stopword_file %s contains no words", c.StopwordFile)
		}
		pcfg.ExtraStopwords = extra
	}

	if err := pcfg.Validate(); err != nil {
		return parse.Config{}, err
	}
	return pcfg, nil
}

// readWordFile loads one word per line; blank lines and #-comments skipped.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		words = append(words, w)
	}
	return words, sc.Err()
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
