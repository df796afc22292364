// Package persistence provides SQLite-backed game storage: a single named
// save slot holding a zstd-compressed world snapshot, plus an append-only
// news log.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"
)

// DefaultSlot is the single save slot the game uses.
const DefaultSlot = "default"

// DB wraps a SQLite connection for save slots and the news log.
type DB struct {
	conn    *sqlx.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("init decompressor: %w", err)
	}

	db := &DB{conn: conn, encoder: enc, decoder: dec}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		name TEXT PRIMARY KEY,
		saved_at TEXT NOT NULL,
		snapshot BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS news_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		date TEXT NOT NULL,
		category TEXT NOT NULL,
		headline TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_news_day ON news_log(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSlot compresses and stores a world snapshot under the slot name,
// replacing any previous save.
func (db *DB) SaveSlot(name string, snapshot []byte) error {
	compressed := db.encoder.EncodeAll(snapshot, nil)
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO save_slots (name, saved_at, snapshot) VALUES (?, ?, ?)",
		name, time.Now().UTC().Format(time.RFC3339), compressed,
	)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	slog.Info("game saved", "slot", name, "bytes", len(compressed))
	return nil
}

// LoadSlot returns the decompressed snapshot for a slot. A slot whose
// blob no longer decompresses is cleared and reported as corrupt, so a
// broken save can never wedge startup.
func (db *DB) LoadSlot(name string) ([]byte, error) {
	var compressed []byte
	err := db.conn.Get(&compressed,
		"SELECT snapshot FROM save_slots WHERE name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", name, err)
	}
	snapshot, err := db.decoder.DecodeAll(compressed, nil)
	if err != nil {
		db.DeleteSlot(name)
		return nil, fmt.Errorf("slot %s corrupt, cleared: %w", name, err)
	}
	return snapshot, nil
}

// HasSlot reports whether a save exists under the name.
func (db *DB) HasSlot(name string) bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM save_slots WHERE name = ?", name); err != nil {
		return false
	}
	return n > 0
}

// DeleteSlot removes a save.
func (db *DB) DeleteSlot(name string) error {
	_, err := db.conn.Exec("DELETE FROM save_slots WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", name, err)
	}
	return nil
}

// NewsRecord is one persisted news entry.
type NewsRecord struct {
	Day      int    `db:"day" json:"day"`
	Date     string `db:"date" json:"date"`
	Category string `db:"category" json:"category"`
	Headline string `db:"headline" json:"headline"`
}

// AppendNews writes news entries to the log.
func (db *DB) AppendNews(records []NewsRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.Exec(
			"INSERT INTO news_log (day, date, category, headline) VALUES (?, ?, ?, ?)",
			r.Day, r.Date, r.Category, r.Headline,
		)
		if err != nil {
			return fmt.Errorf("insert news: %w", err)
		}
	}
	return tx.Commit()
}

// RecentNews returns the most recent N log entries, newest first.
func (db *DB) RecentNews(limit int) ([]NewsRecord, error) {
	var records []NewsRecord
	err := db.conn.Select(&records,
		"SELECT day, date, category, headline FROM news_log ORDER BY id DESC LIMIT ?",
		limit,
	)
	return records, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}
