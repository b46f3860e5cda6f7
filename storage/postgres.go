package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore mirrors each run's job records into a database, keyed by
// detail URL, for querying across runs. It is optional; the CSV/JSON
// outputs remain the source of truth.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveRecords upserts the run's job records by detail URL. A job applied to
// in a later run flips its applied flag rather than inserting a duplicate.
func (s *PostgresStore) SaveRecords(ctx context.Context, records []models.JobRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO job_applications (detail_url, title, skills, applied)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (detail_url) DO UPDATE
		SET
			title = EXCLUDED.title,
			skills = EXCLUDED.skills,
			applied = job_applications.applied OR EXCLUDED.applied,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, record := range records {
		if record.DetailURL == "" {
			continue
		}
		if _, err = stmt.ExecContext(
			ctx,
			record.DetailURL,
			record.Title,
			record.Skills,
			record.Applied,
		); err != nil {
			return 0, fmt.Errorf("insert job %q: %w", record.DetailURL, err)
		}
		total++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS job_applications (
			id BIGSERIAL PRIMARY KEY,
			detail_url TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			skills TEXT NOT NULL DEFAULT '',
			applied BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_job_applications_applied ON job_applications(applied);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
