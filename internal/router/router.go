package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"music-catalog/internal/config"
	"music-catalog/internal/handler"
	"music-catalog/internal/middleware"
	"music-catalog/internal/model"
)

// HealthCheck reports whether backing stores are reachable.
type HealthCheck func(ctx context.Context) error

func New(
	cfg *config.Config,
	health HealthCheck,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	artistHandler *handler.ArtistHandler,
	albumHandler *handler.AlbumHandler,
	trackHandler *handler.TrackHandler,
	favoriteHandler *handler.FavoriteHandler,
	auditHandler *handler.AuditHandler,
) http.Handler {
	r := chi.NewRouter()
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins, strings.EqualFold(cfg.LogLevel, "debug")))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimiter.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if health != nil {
			if err := health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	requireAuth := authMiddleware.RequireAuth
	adminOnly := authMiddleware.RequireRoles(model.RoleAdmin)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", authHandler.Signup)
			auth.Post("/login", authHandler.Login)
			auth.With(requireAuth).Get("/logout", authHandler.Logout)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(requireAuth)
			users.Put("/update-password", authHandler.UpdatePassword)

			users.Group(func(admin chi.Router) {
				admin.Use(adminOnly)
				admin.Get("/", userHandler.List)
				admin.Post("/add-user", userHandler.Create)
				admin.Delete("/{id}", userHandler.Delete)
			})
		})

		api.Route("/artists", func(artists chi.Router) {
			artists.Use(requireAuth)
			artists.Get("/", artistHandler.List)
			artists.Post("/add-artist", artistHandler.Create)
			artists.Get("/{id}", artistHandler.Get)
			artists.Put("/{id}", artistHandler.Update)
			artists.Delete("/{id}", artistHandler.Delete)
		})

		api.Route("/albums", func(albums chi.Router) {
			albums.Use(requireAuth)
			albums.Get("/", albumHandler.List)
			albums.Post("/add-album", albumHandler.Create)
			albums.Get("/{id}", albumHandler.Get)
			albums.Put("/{id}", albumHandler.Update)
			albums.Delete("/{id}", albumHandler.Delete)
		})

		api.Route("/tracks", func(tracks chi.Router) {
			tracks.Use(requireAuth)
			tracks.Get("/", trackHandler.List)
			tracks.Post("/add-track", trackHandler.Create)
			tracks.Get("/{id}", trackHandler.Get)
			tracks.Put("/{id}", trackHandler.Update)
			tracks.Delete("/{id}", trackHandler.Delete)
		})

		api.Route("/favorites", func(favorites chi.Router) {
			favorites.Use(requireAuth)
			favorites.Post("/add-favorite", favoriteHandler.Add)
			favorites.Delete("/remove-favorite/{id}", favoriteHandler.Remove)
			favorites.Get("/{category}", favoriteHandler.List)
		})

		api.With(requireAuth, adminOnly).Get("/audit", auditHandler.List)
	})

	return r
}
