package store

import "strings"

type scopedStore struct {
	inner  Store
	prefix string
}

// Scoped confines every key to scope, so one physical store can hold the
// sessions of many devices. An empty scope returns s unchanged.
func Scoped(s Store, scope string) Store {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return s
	}
	return &scopedStore{inner: s, prefix: scope + "/"}
}

func (s *scopedStore) Get(key string) (string, bool) {
	return s.inner.Get(s.prefix + key)
}

func (s *scopedStore) Set(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return s.inner.Set(s.prefix+key, value)
}

func (s *scopedStore) Delete(key string) error {
	return s.inner.Delete(s.prefix + key)
}
