package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db     *sql.DB
	sealer *Sealer
	logger *slog.Logger
}

type PostgresOptions struct {
	MigrationsDir string
	Sealer        *Sealer
	Logger        *slog.Logger
}

func NewPostgresStore(dsn string, opts PostgresOptions) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	source, err := migrationSource(postgresDialect, opts.MigrationsDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applyMigrations(db, postgresDialect, source); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStore{db: db, sealer: opts.Sealer, logger: logger}, nil
}

func (s *PostgresStore) Get(key string) (string, bool) {
	return readSecret(s.db.QueryRow(`SELECT value FROM secrets WHERE key = $1`, key), key, s.sealer, s.logger)
}

func (s *PostgresStore) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	sealed, err := sealValue(s.sealer, value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO secrets (key, value, updated_at) VALUES ($1,$2,$3)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, sealed, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set secret: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM secrets WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
