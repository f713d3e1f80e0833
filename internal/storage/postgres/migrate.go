package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const migrationTable = "schema_migrations"

const (
	markerUp   = "-- +migrate Up"
	markerDown = "-- +migrate Down"
)

// ApplyMigrations executes the *.sql files below root in name order, each at most once.
func ApplyMigrations(ctx context.Context, db *sql.DB, migrationFS fs.FS, root string) error {
	const op = "storage.postgres.ApplyMigrations"

	if db == nil {
		return fmt.Errorf("%s: sql db is required", op)
	}

	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}

	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return fmt.Errorf("%s: read migrations dir: %w", op, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := `
		CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
			name       TEXT PRIMARY KEY,
			applied_at BIGINT NOT NULL
		)`
	if _, err = db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("%s: ensure migration table: %w", op, err)
	}

	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, path.Join(root, file))
		if err != nil {
			return fmt.Errorf("%s: read migration %s: %w", op, file, err)
		}

		applied, err := isApplied(ctx, db, file)
		if err != nil {
			return fmt.Errorf("%s: check migration %s: %w", op, file, err)
		}
		if applied {
			continue
		}

		upSQL := ExtractUpMigration(string(content))
		if strings.TrimSpace(upSQL) == "" {
			continue
		}

		if err = applyOne(ctx, db, file, upSQL); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func applyOne(ctx context.Context, db *sql.DB, name, upSQL string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, upSQL); err != nil {
		return fmt.Errorf("exec migration %s: %w", name, err)
	}

	insertQuery := `
		INSERT INTO ` + migrationTable + ` (name, applied_at)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`

	if _, err = tx.ExecContext(ctx, insertQuery, name, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("record migration %s: %w", name, err)
	}

	return tx.Commit()
}

// ExtractUpMigration returns the SQL between the Up and Down markers.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, markerUp)
	if upIdx == -1 {
		return content
	}

	downIdx := strings.Index(content, markerDown)
	if downIdx == -1 {
		return content[upIdx+len(markerUp):]
	}

	return content[upIdx+len(markerUp) : downIdx]
}

func isApplied(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var found int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = $1", name).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
