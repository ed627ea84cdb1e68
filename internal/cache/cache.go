package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktrang/chatstat/internal/parse"
)

// fingerprint captures every config knob that changes parse output; a cached
// export parsed under a different configuration is stale even when the file
// itself is unchanged.
func fingerprint(cfg parse.Config) string {
	return fmt.Sprintf("pattern=%s monthFirst=%t media=%s lang=%s extra=%s keepNumeric=%t",
		cfg.Pattern, cfg.MonthFirst, cfg.MediaToken, cfg.StopwordLang,
		strings.Join(cfg.ExtraStopwords, ","), cfg.KeepNumeric)
}

// LoadOrParse returns the parsed result for the export at path, reusing
// cached rows when neither the file (mtime+size) nor the parse configuration
// changed since they were written. Cached warnings resurface on every run.
func LoadOrParse(db *DB, path string, cfg parse.Config) (*parse.Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat export: %w", err)
	}

	fp := fingerprint(cfg)
	info, err := db.GetExportInfo(abs)
	if err != nil {
		return nil, fmt.Errorf("cache lookup: %w", err)
	}
	if info != nil && info.Mtime == st.ModTime().Unix() && info.Size == st.Size() && info.Config == fp {
		return db.LoadExport(abs)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	res, err := parse.Parse(string(data), cfg)
	if err != nil {
		return nil, err
	}

	if err := db.SaveExport(abs, st.ModTime().Unix(), st.Size(), fp, res); err != nil {
		return nil, fmt.Errorf("cache write: %w", err)
	}
	return res, nil
}
