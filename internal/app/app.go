package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"music-catalog/internal/config"
	"music-catalog/internal/database"
	"music-catalog/internal/event"
	"music-catalog/internal/handler"
	"music-catalog/internal/middleware"
	"music-catalog/internal/repository"
	"music-catalog/internal/repository/memory"
	"music-catalog/internal/revocation"
	"music-catalog/internal/router"
	"music-catalog/internal/service"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

type stores struct {
	users     service.UserStore
	artists   service.ArtistStore
	albums    service.AlbumStore
	tracks    service.TrackStore
	favorites service.FavoriteStore
	audit     service.AuditStore
	health    router.HealthCheck
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.cleanup()
		}
	}()

	var db *database.DB
	if cfg.StorageBackend == config.StoragePostgres {
		slog.Info("applying database migrations")
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		slog.Info("connecting to PostgreSQL")
		var err error
		db, err = database.New(ctx, cfg.DatabaseURL, database.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, db.Close)
		slog.Info("database ready")
	}

	st := newStores(cfg, db)

	bgCtx, bgCancel := context.WithCancel(context.Background())
	a.cleanupFuncs = append(a.cleanupFuncs, bgCancel)

	revoked, err := a.newRevocationStore(bgCtx, cfg, db)
	if err != nil {
		return nil, err
	}
	if sweeper, isSweeper := revoked.(revocation.Sweeper); isSweeper {
		go revocation.RunSweeper(bgCtx, sweeper, cfg.RevocationSweepInterval)
	}

	bus := event.NewBus()
	a.cleanupFuncs = append(a.cleanupFuncs, bus.Close)
	auditService := service.NewAuditService(st.audit)
	go auditService.Run(bgCtx, bus)

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTTTL, cfg.BcryptCost, st.users, revoked, bus)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	userService := service.NewUserService(st.users, cfg.BcryptCost, bus)
	catalogService := service.NewCatalogService(st.artists, st.albums, st.tracks, bus)
	favoriteService := service.NewFavoriteService(st.favorites, st.artists, st.albums, st.tracks, bus)

	appRouter := router.New(
		cfg,
		st.health,
		middleware.NewAuthMiddleware(authService),
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewArtistHandler(catalogService),
		handler.NewAlbumHandler(catalogService),
		handler.NewTrackHandler(catalogService),
		handler.NewFavoriteHandler(favoriteService),
		handler.NewAuditHandler(auditService),
	)

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	ok = true
	return a, nil
}

func newStores(cfg *config.Config, db *database.DB) stores {
	if cfg.StorageBackend == config.StoragePostgres {
		pool := db.Pool
		return stores{
			users:     repository.NewUserRepository(pool),
			artists:   repository.NewArtistRepository(pool),
			albums:    repository.NewAlbumRepository(pool),
			tracks:    repository.NewTrackRepository(pool),
			favorites: repository.NewFavoriteRepository(pool),
			audit:     repository.NewAuditRepository(pool),
			health:    db.Health,
		}
	}

	slog.Warn("using in-memory storage; data is lost on restart")
	mem := memory.New()
	return stores{
		users:     mem.Users(),
		artists:   mem.Artists(),
		albums:    mem.Albums(),
		tracks:    mem.Tracks(),
		favorites: mem.Favorites(),
		audit:     mem.Audit(),
	}
}

func (a *App) newRevocationStore(ctx context.Context, cfg *config.Config, db *database.DB) (revocation.Store, error) {
	switch cfg.RevocationBackend {
	case config.RevocationRedis:
		client, err := revocation.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, func() { _ = client.Close() })
		slog.Info("revocation list backed by redis")
		return revocation.NewRedisStore(client), nil
	case config.RevocationPostgres:
		return repository.NewRevokedTokenRepository(db.Pool), nil
	default:
		return revocation.NewMemoryStore(), nil
	}
}

// Handler exposes the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) cleanup() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)
	a.cleanup()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// Close releases background workers and connections without serving.
func (a *App) Close() {
	a.cleanup()
}
