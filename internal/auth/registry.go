package auth

import (
	"container/list"
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultDeviceIdleTTL = 30 * time.Minute
	DefaultMaxDevices    = 10000
)

type RegistryConfig struct {
	// IdleTTL drops devices not seen for this long. Their tokens stay in
	// the store, so a returning device bootstraps again.
	IdleTTL time.Duration
	// MaxDevices caps the live managers; the least recently seen goes first.
	MaxDevices int
	Now        func() time.Time
}

type registryEntry struct {
	deviceID    string
	manager     *Manager
	unsubscribe func()
	lastSeen    time.Time
}

// Registry keeps one Manager per recently seen device.
type Registry struct {
	factory func(deviceID string) *Manager
	logger  *slog.Logger
	ttl     time.Duration
	max     int
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	// recency holds *registryEntry, most recently seen at the front.
	recency *list.List
}

func NewRegistry(factory func(deviceID string) *Manager, cfg RegistryConfig, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultDeviceIdleTTL
	}
	if cfg.MaxDevices <= 0 {
		cfg.MaxDevices = DefaultMaxDevices
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Registry{
		factory: factory,
		logger:  logger,
		ttl:     cfg.IdleTTL,
		max:     cfg.MaxDevices,
		now:     cfg.Now,
		entries: make(map[string]*list.Element),
		recency: list.New(),
	}
}

// Get returns the device's manager, creating and bootstrapping it on first use.
// Bootstrap outlives ctx so a dropped first request cannot leave the device
// half-initialised.
func (r *Registry) Get(ctx context.Context, deviceID string) *Manager {
	now := r.now()

	r.mu.Lock()
	r.expire(now)
	var entry *registryEntry
	if el, ok := r.entries[deviceID]; ok {
		entry = el.Value.(*registryEntry)
		r.recency.MoveToFront(el)
	} else {
		for r.recency.Len() >= r.max {
			r.evict(r.recency.Back(), "capacity")
		}
		m := r.factory(deviceID)
		entry = &registryEntry{
			deviceID:    deviceID,
			manager:     m,
			unsubscribe: m.Subscribe(r.logTransitions(deviceID)),
		}
		r.entries[deviceID] = r.recency.PushFront(entry)
	}
	entry.lastSeen = now
	m := entry.manager
	r.mu.Unlock()

	m.Bootstrap(context.WithoutCancel(ctx))
	return m
}

func (r *Registry) logTransitions(deviceID string) func(Session) {
	return func(s Session) {
		if s.State == StateAuthenticating {
			return
		}
		attrs := []any{slog.String("device", deviceID), slog.String("state", string(s.State))}
		if s.User != nil {
			attrs = append(attrs, slog.String("user", s.User.ID))
		}
		r.logger.Debug("session changed", attrs...)
	}
}

// expire drops idle devices from the back of the recency list.
func (r *Registry) expire(now time.Time) {
	for el := r.recency.Back(); el != nil; el = r.recency.Back() {
		if now.Sub(el.Value.(*registryEntry).lastSeen) <= r.ttl {
			return
		}
		r.evict(el, "idle")
	}
}

func (r *Registry) evict(el *list.Element, reason string) {
	entry := r.recency.Remove(el).(*registryEntry)
	delete(r.entries, entry.deviceID)
	entry.unsubscribe()
	r.logger.Debug("device evicted", slog.String("device", entry.deviceID), slog.String("reason", reason))
}

func (r *Registry) Forget(deviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if el, ok := r.entries[deviceID]; ok {
		r.evict(el, "forget")
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recency.Len()
}
