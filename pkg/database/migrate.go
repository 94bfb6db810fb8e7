package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embedded embed.FS

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrator applies versioned SQL files in lexical order, recording each in schema_migrations.
type Migrator struct {
	db     *sqlx.DB
	files  fs.FS
	logger *zap.Logger
}

// NewMigrator builds a migrator over the schema files shipped with the binary.
func NewMigrator(db *sqlx.DB, logger *zap.Logger) *Migrator {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return NewMigratorFS(db, sub, logger)
}

// NewMigratorFS builds a migrator over an arbitrary directory of *.sql files.
func NewMigratorFS(db *sqlx.DB, files fs.FS, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{db: db, files: files, logger: logger}
}

// Up applies every pending migration and returns the versions it applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		version := Version(name)
		done, err := m.isApplied(ctx, version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		body, err := fs.ReadFile(m.files, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := m.apply(ctx, version, string(body)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		m.logger.Info("migration applied", zap.String("version", version), zap.String("file", name))
		applied = append(applied, version)
	}
	return applied, nil
}

func (m *Migrator) isApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	const query = `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	if err := m.db.GetContext(ctx, &exists, query, version); err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return exists, nil
}

func (m *Migrator) apply(ctx context.Context, version, body string) (err error) {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, body); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

// Version extracts the version prefix of a migration file, "001_init.sql" => "001".
func Version(name string) string {
	base := path.Base(name)
	if idx := strings.Index(base, "_"); idx > 0 {
		return base[:idx]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
