package postgres

import (
	"context"
	"database/sql"
	"events2/internal/config"
	"events2/internal/storage/postgres/migrations"
	"events2/internal/storage/query"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB      *sql.DB
	backend *query.Backend
	loc     *time.Location
}

func InitDB(dbCfg *config.Database, loc *time.Location) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return New(db, loc), nil
}

// New wraps an open connection pool. Timestamps read from the database are
// converted into loc.
func New(db *sql.DB, loc *time.Location) *Storage {
	if loc == nil {
		loc = time.UTC
	}

	return &Storage{
		DB:      db,
		backend: query.NewBackend(db),
		loc:     loc,
	}
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	return ApplyMigrations(ctx, s.DB, migrations.FS, ".")
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.Unix()
}

func (s *Storage) fromUnix(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}

	return time.Unix(ts, 0).In(s.loc)
}
