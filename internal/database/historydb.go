package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/vcindex/internal/model"
	"github.com/nao1215/vcindex/internal/tracktype"
)

// FileName is the database file created inside the database directory.
const FileName = "vcindex.db"

// timestampLayout has fixed-width fractions so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB stores recorded runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (record a run with --record first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	-- One row per recorded run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		base_dir TEXT NOT NULL,
		api_pages INTEGER NOT NULL DEFAULT 0,
		local_count INTEGER NOT NULL DEFAULT 0,
		remote_count INTEGER NOT NULL DEFAULT 0,
		track_types TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Examples seen in a run
	CREATE TABLE IF NOT EXISTS examples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		href TEXT NOT NULL,
		title TEXT NOT NULL,
		source TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		track_types TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_examples_run ON examples(run_id);
	CREATE INDEX IF NOT EXISTS idx_examples_href ON examples(href);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata summarises a recorded run.
type RunMetadata struct {
	// ID is the unique identifier of the run.
	ID int64 `json:"id"`

	// Timestamp is when the catalog was generated.
	Timestamp time.Time `json:"timestamp"`

	// BaseDir is the directory the local examples were read from.
	BaseDir string `json:"base_dir"`

	// APIPages, LocalCount and RemoteCount are the collected counts.
	APIPages    int `json:"api_pages"`
	LocalCount  int `json:"local_count"`
	RemoteCount int `json:"remote_count"`

	// TrackTypes is the sorted track-type union of the run.
	TrackTypes []string `json:"track_types"`
}

// ExampleRecord is an example as stored in a run.
type ExampleRecord struct {
	Href        string       `json:"href"`
	Title       string       `json:"title"`
	Source      model.Source `json:"source"`
	Fingerprint string       `json:"fingerprint"`
	TrackTypes  []string     `json:"track_types"`
}

// Run is a recorded run with its examples in collection order.
type Run struct {
	RunMetadata

	Examples []ExampleRecord `json:"examples"`
}

// SaveRun records a finished catalog and returns the new run ID.
func (h *HistoryDB) SaveRun(ctx context.Context, catalog *model.Catalog) (int64, error) {
	typesJSON, err := json.Marshal(nonNil(catalog.TrackTypes))
	if err != nil {
		return 0, fmt.Errorf("failed to serialize track types: %w", err)
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (timestamp, base_dir, api_pages, local_count, remote_count, track_types)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		catalog.GeneratedAt.UTC().Format(timestampLayout),
		catalog.BaseDir,
		len(catalog.APIPages),
		len(catalog.Local),
		len(catalog.Remote),
		string(typesJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO examples (run_id, position, href, title, source, fingerprint, track_types)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare example insert: %w", err)
	}
	defer stmt.Close()

	for i, ex := range catalog.All() {
		exTypes, err := json.Marshal(tracktype.Extract(ex.Viewconf).Sorted())
		if err != nil {
			return 0, fmt.Errorf("failed to serialize track types: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID, i, ex.Href, ex.Title, string(ex.Source), ex.Fingerprint(), string(exTypes),
		); err != nil {
			return 0, fmt.Errorf("failed to save example %s: %w", ex.Href, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns every run, newest first.
func (h *HistoryDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT id, timestamp, base_dir, api_pages, local_count, remote_count, track_types
	FROM runs
	ORDER BY timestamp DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRunMetadata(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID and its examples.
// It returns ErrRunNotFound when the ID does not exist.
func (h *HistoryDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := h.db.QueryRowContext(ctx, `
	SELECT id, timestamp, base_dir, api_pages, local_count, remote_count, track_types
	FROM runs
	WHERE id = ?
	`, id)

	meta, err := scanRunMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	examples, err := h.runExamples(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Run{RunMetadata: meta, Examples: examples}, nil
}

// LatestRuns returns the two most recent runs, newest first.
// It returns ErrNotEnoughRuns when fewer than two runs are recorded.
func (h *HistoryDB) LatestRuns(ctx context.Context) (current, previous *Run, err error) {
	runs, err := h.ListRuns(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(runs) < 2 {
		return nil, nil, fmt.Errorf("%w (found %d)", ErrNotEnoughRuns, len(runs))
	}

	current, err = h.GetRun(ctx, runs[0].ID)
	if err != nil {
		return nil, nil, err
	}
	previous, err = h.GetRun(ctx, runs[1].ID)
	if err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}

// runExamples loads the examples of a run in collection order.
func (h *HistoryDB) runExamples(ctx context.Context, runID int64) ([]ExampleRecord, error) {
	rows, err := h.db.QueryContext(ctx, `
	SELECT href, title, source, fingerprint, track_types
	FROM examples
	WHERE run_id = ?
	ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}
	defer rows.Close()

	examples := make([]ExampleRecord, 0)
	for rows.Next() {
		var rec ExampleRecord
		var source, typesJSON string
		if err := rows.Scan(&rec.Href, &rec.Title, &source, &rec.Fingerprint, &typesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		rec.Source = model.Source(source)
		if err := json.Unmarshal([]byte(typesJSON), &rec.TrackTypes); err != nil {
			return nil, fmt.Errorf("failed to parse track types of %s: %w", rec.Href, err)
		}
		examples = append(examples, rec)
	}
	return examples, rows.Err()
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRunMetadata(row rowScanner) (RunMetadata, error) {
	var meta RunMetadata
	var timestamp, typesJSON string
	if err := row.Scan(
		&meta.ID, &timestamp, &meta.BaseDir,
		&meta.APIPages, &meta.LocalCount, &meta.RemoteCount, &typesJSON,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("failed to scan run: %w", err)
	}

	meta.Timestamp = parseTimestamp(timestamp)
	if err := json.Unmarshal([]byte(typesJSON), &meta.TrackTypes); err != nil {
		return meta, fmt.Errorf("failed to parse track types of run %d: %w", meta.ID, err)
	}
	return meta, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,           // Format written by SaveRun
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
