package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"footmatch-app/internal/model"
)

type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

var ErrInvalidRole = errors.New("role must be PLAYER or ORGANIZER")

// Session is the snapshot handed to subscribers.
type Session struct {
	State     State
	User      *model.User
	ExpiresIn int64
}

func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

type Backend interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error)
}

type TokenStore interface {
	RefreshToken() (string, bool)
	Save(accessToken, refreshToken string) error
	Clear() error
}

type subscriber struct {
	id int
	fn func(Session)
}

// Manager owns one device's session. Access tokens are only renewed by
// Refresh; a 401 on a later call is not retried.
type Manager struct {
	backend Backend
	tokens  TokenStore
	logger  *slog.Logger

	mu      sync.Mutex
	current Session
	subs    []subscriber
	nextSub int

	bootstrap sync.Once
}

func NewManager(backend Backend, tokens TokenStore, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		backend: backend,
		tokens:  tokens,
		logger:  logger,
		current: Session{State: StateAnonymous},
	}
}

func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) User() (model.User, bool) {
	s := m.Current()
	if !s.Authenticated() {
		return model.User{}, false
	}
	return *s.User, true
}

// Subscribe registers fn for every later state change. The returned func
// removes it and may be called more than once.
func (m *Manager) Subscribe(fn func(Session)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) Login(ctx context.Context, req model.LoginRequest) (model.User, error) {
	return m.authenticate(ctx, "login", func(ctx context.Context) (model.AuthResponse, error) {
		return m.backend.Login(ctx, req)
	})
}

func (m *Manager) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if !req.Role.Valid() {
		return model.User{}, ErrInvalidRole
	}
	return m.authenticate(ctx, "register", func(ctx context.Context) (model.AuthResponse, error) {
		return m.backend.Register(ctx, req)
	})
}

func (m *Manager) authenticate(ctx context.Context, op string, call func(context.Context) (model.AuthResponse, error)) (model.User, error) {
	previous := m.Current()
	m.publish(Session{State: StateAuthenticating})

	resp, err := call(ctx)
	if err != nil {
		m.publish(previous)
		return model.User{}, err
	}
	if err := m.tokens.Save(resp.AccessToken, resp.RefreshToken); err != nil {
		m.publish(previous)
		return model.User{}, fmt.Errorf("%s: store tokens: %w", op, err)
	}
	m.publishAuthenticated(resp)
	return resp.User, nil
}

// Refresh exchanges the stored refresh token for a new pair. No stored token
// and a rejected token both yield ok == false; a rejected token is purged.
func (m *Manager) Refresh(ctx context.Context) (model.AuthResponse, bool) {
	refreshToken, ok := m.tokens.RefreshToken()
	if !ok {
		m.publish(Session{State: StateAnonymous})
		return model.AuthResponse{}, false
	}
	resp, err := m.backend.Refresh(ctx, refreshToken)
	if err == nil {
		err = m.tokens.Save(resp.AccessToken, resp.RefreshToken)
	}
	if err != nil {
		m.logger.Info("session refresh failed, continuing anonymous", slog.String("error", err.Error()))
		if clearErr := m.tokens.Clear(); clearErr != nil {
			m.logger.Warn("clear tokens", slog.String("error", clearErr.Error()))
		}
		m.publish(Session{State: StateAnonymous})
		return model.AuthResponse{}, false
	}
	m.publishAuthenticated(resp)
	return resp, true
}

// Bootstrap runs Refresh once per manager; later calls return the current
// session without contacting the backend.
func (m *Manager) Bootstrap(ctx context.Context) Session {
	m.bootstrap.Do(func() {
		m.publish(Session{State: StateAuthenticating})
		m.Refresh(ctx)
	})
	return m.Current()
}

// Logout clears the stored tokens. It is idempotent and never fails.
func (m *Manager) Logout() {
	if err := m.tokens.Clear(); err != nil {
		m.logger.Warn("clear tokens", slog.String("error", err.Error()))
	}
	m.publish(Session{State: StateAnonymous})
}

func (m *Manager) publishAuthenticated(resp model.AuthResponse) {
	user := resp.User
	m.publish(Session{State: StateAuthenticated, User: &user, ExpiresIn: resp.ExpiresIn})
}

func (m *Manager) publish(s Session) {
	m.mu.Lock()
	m.current = s
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
}
