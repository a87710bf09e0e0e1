package store

import (
	"database/sql"
	"errors"
	"log/slog"
)

// Store is the opaque secret store holding session tokens. A missing key is
// reported as absent, never as an error.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

var ErrEmptyKey = errors.New("key is required")

// readSecret reports a missing row as absent. Any other failure is logged
// and also reads as absent, so callers fall back to an anonymous session.
func readSecret(row *sql.Row, key string, sealer *Sealer, logger *slog.Logger) (string, bool) {
	var value string
	err := row.Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	case err != nil:
		logger.Warn("read secret", slog.String("key", key), slog.String("error", err.Error()))
		return "", false
	}
	out, ok := openValue(sealer, value)
	if !ok {
		logger.Warn("secret cannot be opened", slog.String("key", key))
	}
	return out, ok
}
