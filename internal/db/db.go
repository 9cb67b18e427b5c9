// internal/db/db.go
//
// Database helpers for the results store.
// Responsibilities:
//   - Opening SQLite with safe defaults (busy timeout, WAL for files, foreign keys).
//   - Applying the embedded migrations with golang-migrate.
//
// The default DSN is an in-process ":memory:" database, so results last only
// as long as the process.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/friendle/assets"
)

// MemoryDSN is the default, process-local database.
const MemoryDSN = ":memory:"

func isMemory(dsn string) bool {
	return dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
}

// Open opens (and creates if missing) a SQLite database.
//
//   - Ensures the parent directory exists for file DSNs (e.g. ./data/friendle.db).
//   - Configures busy timeout and WAL journaling for files.
//   - Enforces foreign keys.
//   - Pins the pool to one connection: every ":memory:" connection would
//     otherwise be a separate, empty database.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	full := dsn
	if !isMemory(dsn) {
		dir := filepath.Dir(strings.TrimPrefix(dsn, "file:"))
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		if !strings.Contains(dsn, "?") {
			full = dsn + "?_busy_timeout=5000&_journal_mode=WAL"
		}
	}

	db, err := sql.Open("sqlite3", full)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies every pending embedded migration. Running it again is a no-op.
func Migrate(db *sql.DB) error {
	src, err := iofs.New(assets.FS, assets.MigrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	drv, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}

	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}
