package migration

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"resume-builder/internal/logger"
)

// Execer runs a single statement.
type Execer interface {
	Exec(ctx context.Context, sql string) error
}

type poolExecer struct{ pool *pgxpool.Pool }

func (p poolExecer) Exec(ctx context.Context, sql string) error {
	_, err := p.pool.Exec(ctx, sql)
	return err
}

// Migration is one idempotent schema step.
type Migration struct {
	Name  string
	Query string
}

// Migrations lists the schema steps in order.
var Migrations = []Migration{
	{
		Name: "create_resume_documents",
		Query: `
			CREATE TABLE IF NOT EXISTS resume_documents (
				id UUID PRIMARY KEY,
				template TEXT NOT NULL DEFAULT 'template-modern',
				body JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
	{
		Name:  "index_resume_documents_updated_at",
		Query: `CREATE INDEX IF NOT EXISTS resume_documents_updated_at_idx ON resume_documents (updated_at DESC);`,
	},
}

// RunMigrations executes all migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return Run(ctx, poolExecer{pool}, Migrations)
}

// Run applies migrations in order and stops at the first failure.
func Run(ctx context.Context, db Execer, migrations []Migration) error {
	logger.Info().Int("count", len(migrations)).Msg("starting database migrations")
	for _, m := range migrations {
		if err := db.Exec(ctx, m.Query); err != nil {
			logger.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		logger.Info().Str("name", m.Name).Msg("migration completed")
	}
	logger.Info().Msg("all migrations completed")
	return nil
}
