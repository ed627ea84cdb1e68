// Package cache persists parsed exports in SQLite so repeated aggregation
// runs over an unchanged file skip the parse entirely.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ktrang/chatstat/internal/parse"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS exports (
    path        TEXT PRIMARY KEY,
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0,
    config      TEXT NOT NULL DEFAULT '',
    parsed_at   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS messages (
    path     TEXT NOT NULL,
    seq      INTEGER NOT NULL,
    ts       TEXT NOT NULL,
    sender   TEXT NOT NULL,
    body     TEXT NOT NULL,
    is_media INTEGER NOT NULL DEFAULT 0,
    emojis   TEXT NOT NULL DEFAULT '[]',
    words    TEXT NOT NULL DEFAULT '[]',
    links    TEXT NOT NULL DEFAULT '[]',
    line     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (path, seq)
);

CREATE TABLE IF NOT EXISTS warnings (
    path   TEXT NOT NULL,
    seq    INTEGER NOT NULL,
    line   INTEGER NOT NULL DEFAULT 0,
    reason TEXT NOT NULL,
    text   TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (path, seq)
);
`

// timestamps are stored naive, the way the export carries them
const tsLayout = "2006-01-02T15:04:05"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// schema version tracking for forced re-parse
	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever parsing or the stored row shape
// changes, to force a re-parse of every cached export.
const schemaVersion = "2"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		// v2 added the links column; the error on an already-current
		// table is a duplicate-column complaint and can be ignored
		d.db.Exec("ALTER TABLE messages ADD COLUMN links TEXT NOT NULL DEFAULT '[]'")
		// invalidate by resetting freshness markers
		d.db.Exec("UPDATE exports SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

// ExportInfo is the freshness record for one cached export.
type ExportInfo struct {
	Mtime  int64
	Size   int64
	Config string
}

func (d *DB) GetExportInfo(path string) (*ExportInfo, error) {
	var info ExportInfo
	err := d.db.QueryRow(
		"SELECT mtime, size, config FROM exports WHERE path = ?",
		path,
	).Scan(&info.Mtime, &info.Size, &info.Config)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) DeleteExport(path string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"messages", "warnings", "exports"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE path = ?", path); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveExport replaces the cached rows for path with a fresh parse result.
func (d *DB) SaveExport(path string, mtime, size int64, cfgFingerprint string, res *parse.Result) error {
	if err := d.DeleteExport(path); err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO exports (path, mtime, size, config, parsed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		path, mtime, size, cfgFingerprint, time.Now().UTC().Format(tsLayout),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (path, seq, ts, sender, body, is_media, emojis, words, links, line)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range res.Messages {
		emojis, err := json.Marshal(m.Emojis)
		if err != nil {
			return err
		}
		words, err := json.Marshal(m.Words)
		if err != nil {
			return err
		}
		links, err := json.Marshal(m.Links)
		if err != nil {
			return err
		}
		media := 0
		if m.IsMedia {
			media = 1
		}
		_, err = stmt.Exec(
			path, i, m.Timestamp.Format(tsLayout), m.Sender, m.Body,
			media, string(emojis), string(words), string(links), m.Line,
		)
		if err != nil {
			return err
		}
	}

	for i, w := range res.Warnings {
		_, err := tx.Exec(
			`INSERT INTO warnings (path, seq, line, reason, text) VALUES (?, ?, ?, ?, ?)`,
			path, i, w.Line, string(w.Reason), w.Text,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadExport reads the cached parse result for path.
func (d *DB) LoadExport(path string) (*parse.Result, error) {
	rows, err := d.db.Query(
		`SELECT ts, sender, body, is_media, emojis, words, links, line
		 FROM messages WHERE path = ? ORDER BY seq`,
		path,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := &parse.Result{}
	for rows.Next() {
		var (
			ts, sender, body, emojis, words, links string
			media, line                            int
		)
		if err := rows.Scan(&ts, &sender, &body, &media, &emojis, &words, &links, &line); err != nil {
			return nil, err
		}
		m := parse.Message{Sender: sender, Body: body, IsMedia: media != 0, Line: line}
		if m.Timestamp, err = time.Parse(tsLayout, ts); err != nil {
			return nil, fmt.Errorf("cached timestamp %q: %w", ts, err)
		}
		if err := json.Unmarshal([]byte(emojis), &m.Emojis); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(words), &m.Words); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(links), &m.Links); err != nil {
			return nil, err
		}
		res.Messages = append(res.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	wrows, err := d.db.Query(
		`SELECT line, reason, text FROM warnings WHERE path = ? ORDER BY seq`,
		path,
	)
	if err != nil {
		return nil, err
	}
	defer wrows.Close()

	for wrows.Next() {
		var w parse.Warning
		var reason string
		if err := wrows.Scan(&w.Line, &reason, &w.Text); err != nil {
			return nil, err
		}
		w.Reason = parse.WarnReason(reason)
		res.Warnings = append(res.Warnings, w)
	}
	return res, wrows.Err()
}

func (d *DB) ExportCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}
