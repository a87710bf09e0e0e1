package main

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"footmatch-app/internal/api"
	"footmatch-app/internal/auth"
	"footmatch-app/internal/config"
	"footmatch-app/internal/store"
	"footmatch-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

//go:embed templates static
var content embed.FS

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		_ = godotenv.Load(".env", ".env.local")
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)
	// Zone-less backend timestamps are read in the app's zone.
	time.Local = cfg.Location

	secrets, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("secret store", "kind", cfg.Store.Kind(), "error", err)
		os.Exit(1)
	}
	defer closeStore()

	templates, err := web.NewTemplates(content)
	if err != nil {
		logger.Error("templates", "error", err)
		os.Exit(1)
	}
	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		logger.Error("static fs", "error", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.APIURL, api.WithLogger(logger))
	server := web.NewServer(client, secrets, templates, web.Options{
		Logger:        logger,
		Dev:           cfg.IsDev(),
		SecureCookies: cfg.IsProd(),
		Location:      cfg.Location,
		Devices: auth.RegistryConfig{
			IdleTTL:    cfg.Devices.IdleTTL,
			MaxDevices: cfg.Devices.MaxDevices,
		},
	})

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if cfg.Lambda {
		logger.Info("starting in lambda mode", "api_url", cfg.APIURL, "store", cfg.Store.Kind())
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}
	logger.Info("listening", "addr", cfg.ListenAddr, "api_url", cfg.APIURL, "store", cfg.Store.Kind())
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsDev() && !cfg.Lambda {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	var sealer *store.Sealer
	if cfg.Store.SecretKey != "" {
		s, err := store.NewSealer(cfg.Store.SecretKey)
		if err != nil {
			return nil, nil, err
		}
		sealer = s
	} else if cfg.IsProd() && cfg.Store.Kind() != "memory" {
		logger.Warn("SECRET_STORE_KEY is not set, tokens are stored in plaintext")
	}

	switch cfg.Store.Kind() {
	case "postgres":
		pg, err := store.NewPostgresStore(cfg.Store.PostgresDSN, store.PostgresOptions{
			MigrationsDir: cfg.Store.PostgresMigrationsDir,
			Sealer:        sealer,
			Logger:        logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return pg, func() { _ = pg.Close() }, nil
	case "sqlite":
		sq, err := store.NewSQLiteStore(cfg.Store.SQLitePath, store.SQLiteOptions{
			MigrationsDir: cfg.Store.SQLiteMigrationsDir,
			Sealer:        sealer,
			Logger:        logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return sq, func() { _ = sq.Close() }, nil
	}
	return store.NewMemoryStore(), func() {}, nil
}
