package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"property-service/internal/contextkeys"
	"property-service/internal/core/port"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

// execer - часть pgxpool.Pool, нужная для миграций
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// RunMigrations выполняет *.up.sql по порядку имен. Скрипты идемпотентны (IF NOT EXISTS).
func RunMigrations(ctx context.Context, db execer) error {
	return runMigrations(ctx, db, migrationsFS)
}

func runMigrations(ctx context.Context, db execer, fsys fs.FS) error {
	logger := contextkeys.LoggerFromContext(ctx)

	files, err := fs.Glob(fsys, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if strings.TrimSpace(string(sql)) == "" {
			continue
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
		logger.Info("Migration applied", port.Fields{"file": file})
	}
	return nil
}
