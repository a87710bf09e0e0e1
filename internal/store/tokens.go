package store

import "errors"

// Tokens reads and writes the session token pair under the two well-known keys.
type Tokens struct {
	store Store
}

func NewTokens(s Store) *Tokens {
	return &Tokens{store: s}
}

func (t *Tokens) AccessToken() (string, bool) {
	return nonEmpty(t.store.Get(AccessTokenKey))
}

func (t *Tokens) RefreshToken() (string, bool) {
	return nonEmpty(t.store.Get(RefreshTokenKey))
}

func (t *Tokens) Save(accessToken, refreshToken string) error {
	if err := t.store.Set(AccessTokenKey, accessToken); err != nil {
		return err
	}
	return t.store.Set(RefreshTokenKey, refreshToken)
}

// Clear removes both tokens, attempting the second even if the first fails.
func (t *Tokens) Clear() error {
	return errors.Join(
		t.store.Delete(AccessTokenKey),
		t.store.Delete(RefreshTokenKey),
	)
}

func nonEmpty(value string, ok bool) (string, bool) {
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
