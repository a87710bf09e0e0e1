package store

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	sealerSalt     = "footmatch-secret-store"
	sealerNonceLen = 24
)

var ErrUnsealable = errors.New("sealed value cannot be opened")

// Sealer encrypts values before they reach a persistent store.
type Sealer struct {
	key [32]byte
}

func NewSealer(passphrase string) (*Sealer, error) {
	if strings.TrimSpace(passphrase) == "" {
		return nil, errors.New("sealer passphrase is required")
	}
	derived, err := scrypt.Key([]byte(passphrase), []byte(sealerSalt), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive sealer key: %w", err)
	}
	s := &Sealer{}
	copy(s.key[:], derived)
	return s, nil
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	var nonce [sealerNonceLen]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < sealerNonceLen+secretbox.Overhead {
		return "", ErrUnsealable
	}
	var nonce [sealerNonceLen]byte
	copy(nonce[:], raw[:sealerNonceLen])
	out, ok := secretbox.Open(nil, raw[sealerNonceLen:], &nonce, &s.key)
	if !ok {
		return "", ErrUnsealable
	}
	return string(out), nil
}

func sealValue(s *Sealer, value string) (string, error) {
	if s == nil {
		return value, nil
	}
	return s.Seal(value)
}

func openValue(s *Sealer, value string) (string, bool) {
	if s == nil {
		return value, true
	}
	out, err := s.Open(value)
	if err != nil {
		return "", false
	}
	return out, true
}
