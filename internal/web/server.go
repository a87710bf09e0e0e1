package web

import (
	"log/slog"
	"net/http"
	"time"

	"footmatch-app/internal/api"
	"footmatch-app/internal/auth"
	"footmatch-app/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	api       *api.Client
	secrets   store.Store
	devices   *auth.Registry
	templates *Templates
	logger    *slog.Logger
	now       func() time.Time
	loc       *time.Location
	dev       bool
	secure    bool
}

type Options struct {
	Logger *slog.Logger
	// Dev enables the /dev helpers.
	Dev bool
	// SecureCookies marks the device cookie Secure.
	SecureCookies bool
	Now           func() time.Time
	// Location is the zone users enter and read match times in.
	Location *time.Location
	Devices  auth.RegistryConfig
}

func NewServer(client *api.Client, secrets store.Store, templates *Templates, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	now := func() time.Time { return clock().In(loc) }
	s := &Server{
		api:       client,
		secrets:   secrets,
		templates: templates,
		logger:    logger,
		now:       now,
		loc:       loc,
		dev:       opts.Dev,
		secure:    opts.SecureCookies,
	}
	s.devices = auth.NewRegistry(s.newDeviceManager, opts.Devices, logger)
	return s
}

func (s *Server) deviceTokens(deviceID string) *store.Tokens {
	return store.NewTokens(store.Scoped(s.secrets, deviceID))
}

func (s *Server) newDeviceManager(deviceID string) *auth.Manager {
	tokens := s.deviceTokens(deviceID)
	return auth.NewManager(s.api.WithTokens(tokens), tokens, s.logger.With(slog.String("device", deviceID)))
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Group(func(r chi.Router) {
		r.Use(s.withDevice)

		r.Get("/", s.handleHome)
		r.Get("/my-matches", s.handleMyMatches)
		r.Get("/login", s.handleLogin)
		r.Post("/login", s.handleLoginPost)
		r.Get("/register", s.handleRegister)
		r.Post("/register", s.handleRegisterPost)
		r.Get("/profile", s.handleProfile)
		r.Post("/dev/reset-device", s.handleDevResetDevice)

		r.Get("/matches/{matchID}", s.handleMatchShow)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/logout", s.handleLogoutConfirm)
			r.Post("/logout", s.handleLogout)
			r.Get("/matches/new", s.handleMatchNew)
			r.Post("/matches", s.handleMatchCreate)
			r.Post("/matches/{matchID}/join", s.handleMatchJoin)
			r.Get("/matches/{matchID}/leave", s.handleMatchLeaveConfirm)
			r.Post("/matches/{matchID}/leave", s.handleMatchLeave)
			r.Post("/matches/{matchID}/participants/{playerID}/accept", s.handleParticipantAccept)
			r.Post("/matches/{matchID}/participants/{playerID}/reject", s.handleParticipantReject)
			r.Get("/matches/{matchID}/edit", s.handleMatchEdit)
			r.Post("/matches/{matchID}/edit", s.handleMatchUpdate)
			r.Get("/matches/{matchID}/delete", s.handleMatchDeleteConfirm)
			r.Post("/matches/{matchID}/delete", s.handleMatchDelete)
		})
	})

	return r
}
