// Package server initializes and runs the auth service: it wires the token
// codec, credential store, user directory client, session cache, and HTTP
// transport together, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dkovalev2/authgate/internal/logging"
	"github.com/dkovalev2/authgate/internal/server/cache"
	"github.com/dkovalev2/authgate/internal/server/config"
	"github.com/dkovalev2/authgate/internal/server/directory"
	"github.com/dkovalev2/authgate/internal/server/httpapi"
	"github.com/dkovalev2/authgate/internal/server/repositories/credentials"
	"github.com/dkovalev2/authgate/internal/server/services"
	"github.com/dkovalev2/authgate/internal/server/storage"
	"github.com/dkovalev2/authgate/internal/server/token"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := storage.Open(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec := token.NewCodec(
		[]byte(cfg.AuthSecretKey), []byte(cfg.RefreshSecretKey),
		cfg.AuthTokenTTL, cfg.RefreshTokenTTL,
	)

	sessions := newSessionCache(cfg)
	creds := credentials.NewPostgresRepository(db)
	dir := directory.NewClient(cfg.UserServiceURI, cfg.UserServiceTimeout)

	auth := services.NewAuthService(dir, creds, sessions, codec, logger)

	handler := httpapi.NewHandler(auth, cfg.UserNameMinLength, cfg.PasswordLength, logger)
	router := httpapi.NewRouter(handler, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: &http.Server{Addr: cfg.ListenAddr, Handler: router},
	}, nil
}

// newSessionCache picks the cache backend: Redis when an address is
// configured, otherwise a bounded in-process LRU.
func newSessionCache(cfg *config.Config) cache.Cache {
	if cfg.CacheRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.CacheRedisAddr})
		return cache.NewRedis(client, cfg.CacheTTL)
	}
	return cache.NewMemory(cfg.CacheTTL, cfg.CacheMaxKeys)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.ListenAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server error", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "http shutdown error", "error", err)
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
