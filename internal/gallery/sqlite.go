package gallery

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS images (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    url TEXT NOT NULL,
    title TEXT NOT NULL
);
`

// SQLiteStore keeps the collection in a single table ordered by position.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSQLiteSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func checkSQLiteSchema(db *sql.DB) error {
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		_, err = db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", SchemaVersion)
		if err != nil {
			return fmt.Errorf("failed to write schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d", version)
	}
	return nil
}

func (s *SQLiteStore) SaveAll(ctx context.Context, images []Image) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM images"); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO images (position, id, url, title) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, img := range images {
		if _, err := stmt.ExecContext(ctx, i, img.ID, img.URL, img.Title); err != nil {
			return fmt.Errorf("insert %s: %w", img.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadAll(ctx context.Context) ([]Image, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, url, title FROM images ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.URL, &img.Title); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (s *SQLiteStore) SizeInBytes(ctx context.Context) (int64, error) {
	images, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return SerializedSize(images)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
