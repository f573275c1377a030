package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/rpg/internal/model"
)

// FileName is the database file name inside the history directory.
const FileName = "rpg.db"

// timeLayout has a fixed-width fraction so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when the history database does not exist and
// Options.CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Store records generation runs in SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Entry is one recorded generation run.
type Entry struct {
	ID             int64          `json:"id" yaml:"id"`
	Timestamp      time.Time      `json:"timestamp" yaml:"timestamp"`
	Length         int            `json:"length" yaml:"length"`
	Count          int            `json:"count" yaml:"count"`
	Categories     []string       `json:"categories" yaml:"categories"`
	PoolSize       int            `json:"pool_size" yaml:"pool_size"`
	Entropy        float64        `json:"entropy_bits" yaml:"entropy_bits"`
	Strength       model.Strength `json:"strength" yaml:"strength"`
	SafeMode       bool           `json:"safe_mode" yaml:"safe_mode"`
	Drafts         int            `json:"drafts" yaml:"drafts"`
	LeaksDiscarded int            `json:"leaks_discarded" yaml:"leaks_discarded"`
}

// Open opens or creates the history database in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS batches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		length INTEGER NOT NULL,
		count INTEGER NOT NULL,
		categories TEXT NOT NULL,
		pool_size INTEGER NOT NULL,
		entropy REAL NOT NULL,
		strength INTEGER NOT NULL,
		safe_mode INTEGER NOT NULL,
		drafts INTEGER NOT NULL,
		leaks_discarded INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_batches_timestamp ON batches(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Record stores the metadata of batch and returns the new row ID.
// The passwords of the batch are not written.
func (s *Store) Record(ctx context.Context, batch *model.Batch) (int64, error) {
	if batch == nil {
		return 0, errors.New("batch is nil")
	}

	ts := batch.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO batches (timestamp, length, count, categories, pool_size, entropy, strength, safe_mode, drafts, leaks_discarded)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		ts.UTC().Format(timeLayout),
		batch.Length,
		batch.Count(),
		strings.Join(batch.Categories, ","),
		batch.PoolSize,
		batch.Entropy,
		int(batch.Strength),
		batch.SafeMode,
		batch.Drafts,
		batch.LeaksDiscarded,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record batch: %w", err)
	}

	return result.LastInsertId()
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, timestamp, length, count, categories, pool_size, entropy, strength, safe_mode, drafts, leaks_discarded
	FROM batches
	ORDER BY timestamp DESC, id DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			timestamp  string
			categories string
			strength   int
		)
		if err := rows.Scan(
			&e.ID,
			&timestamp,
			&e.Length,
			&e.Count,
			&categories,
			&e.PoolSize,
			&e.Entropy,
			&strength,
			&e.SafeMode,
			&e.Drafts,
			&e.LeaksDiscarded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		e.Timestamp = parseTimestamp(timestamp)
		e.Strength = model.Strength(strength)
		if categories != "" {
			e.Categories = strings.Split(categories, ",")
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM batches")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return result.RowsAffected()
}

// timestampFormats are tried in order when reading timestamps back.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
