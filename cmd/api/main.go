package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/phexara/phexara-api/internal/config"
	"github.com/phexara/phexara-api/internal/domain/admin"
	"github.com/phexara/phexara-api/internal/domain/gallery"
	"github.com/phexara/phexara-api/internal/domain/image"
	"github.com/phexara/phexara-api/internal/domain/upload"
	"github.com/phexara/phexara-api/internal/middleware"
	"github.com/phexara/phexara-api/internal/pkg/cloudinary"
	"github.com/phexara/phexara-api/internal/pkg/database"
	"github.com/phexara/phexara-api/internal/pkg/logger"
	"github.com/phexara/phexara-api/internal/pkg/metrics"
	"github.com/phexara/phexara-api/internal/pkg/migrate"
	pkgresponse "github.com/phexara/phexara-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Phexara API")

	if cfg.AdminUser == "" || cfg.AdminPass == "" {
		log.Warn().Str("prefix", cfg.AdminPathPrefix).Msg("ADMIN_USER or ADMIN_PASS not set, admin pages will deny every request")
	}
	if cfg.CloudinaryURL == "" && !cfg.IsDevelopment() {
		log.Warn().Msg("CLOUDINARY_URL not set, upload signing will fail")
	}

	writer, err := database.NewPostgres(cfg.DatabaseURL, "writer")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(writer)

	reader := writer
	if cfg.DatabaseReadURL != "" && cfg.DatabaseReadURL != cfg.DatabaseURL {
		reader, err = database.NewPostgres(cfg.DatabaseReadURL, "reader")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL read replica")
		}
		defer database.ClosePostgres(reader)
	}

	if cfg.MigrateOnStart {
		if err := migrate.Up(context.Background(), writer.DB); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied")
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// ---------- Services ----------
	imageRepo := image.NewRepository(writer, reader, metrics.NewStoreMetrics(registry))
	imageService := image.NewService(imageRepo, image.NewRedisListCache(redis, cfg.GalleryCacheTTL))
	uploadService := upload.NewService(cloudinary.NewSigner(cfg.CloudinaryURL))

	r := newRouter(cfg, routerDeps{
		images:   imageService,
		uploads:  uploadService,
		registry: registry,
		writer:   writer,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type routerDeps struct {
	images   *image.Service
	uploads  *upload.Service
	registry *prometheus.Registry
	writer   *sqlx.DB // pinged by /health; nil skips the check
}

func newRouter(cfg *config.Config, deps routerDeps) chi.Router {
	httpMetrics := metrics.NewHTTPMetrics(deps.registry)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(httpMetrics.Middleware)
	r.Use(chimw.Compress(5))
	r.Use(middleware.BasicAuth(middleware.BasicAuthConfig{
		User:   cfg.AdminUser,
		Pass:   cfg.AdminPass,
		Prefix: cfg.AdminPathPrefix,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.writer != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.writer.PingContext(ctx); err != nil {
				pkgresponse.JSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	if deps.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	}

	galleryHandler := gallery.NewHandler(deps.images, cfg.SiteURL)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/images", image.NewHandler(deps.images).Routes())
		r.Mount("/upload", upload.NewHandler(deps.uploads).Routes())
		r.Mount("/gallery", galleryHandler.Routes())
	})

	r.Get("/sitemap.xml", galleryHandler.Sitemap)

	adminPrefix := cfg.AdminPathPrefix
	if adminPrefix == "" {
		adminPrefix = "/admin"
	}
	r.Mount(adminPrefix, admin.NewHandler(deps.images, adminPrefix).Routes())

	return r
}
