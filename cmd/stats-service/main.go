package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kossler/Actual-Analytics/internal/cache"
	"github.com/Kossler/Actual-Analytics/internal/config"
	"github.com/Kossler/Actual-Analytics/internal/db"
	"github.com/Kossler/Actual-Analytics/internal/handlers"
	"github.com/Kossler/Actual-Analytics/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	fmt.Println("=== NFL Stats Service v0 ===")

	cfg := config.LoadConfig()

	// Connect to the stats database
	dbClient, err := db.NewClient(cfg.Postgres.DSN)
	if err != nil {
		fmt.Printf("❌ Failed to connect to stats DB: %v\n", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	fmt.Println("✓ Connected to stats DB")

	// Connect to Redis for the season aggregate cache. The cache is an
	// accelerator only; the service runs without it.
	var seasonCache *cache.SeasonCache
	if cfg.Redis.Enabled {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			fmt.Printf("⚠️  Redis unavailable, running uncached: %v\n", err)
		} else {
			seasonCache = cache.NewSeasonCache(redisClient, cfg.Redis.TTL)
			fmt.Println("✓ Connected to Redis")
		}
		cancel()
	} else {
		fmt.Println("⚠️  Season cache disabled by config")
	}

	// Initialize handlers
	handler := handlers.NewHandler(dbClient, seasonCache)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/players/search", handler.SearchPlayers)
		r.Get("/players/{playerID}", handler.GetPlayer)
		r.Get("/players/{playerID}/gamelog", handler.GetGameLog)
		r.Get("/players/{playerID}/seasons", handler.GetSeasons)
		r.Post("/players/{playerID}/seasons/refresh", handler.RefreshSeasons)
		r.Get("/players/{playerID}/seasons/export", handler.ExportSeasons)
		r.Get("/players/{playerID}/medians", handler.GetSeasonMedians)
		r.Get("/players/{playerID}/advanced", handler.GetAdvancedMetrics)
	})

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Stats service listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/players/search")
		fmt.Println("    GET  /api/v1/players/{playerID}")
		fmt.Println("    GET  /api/v1/players/{playerID}/gamelog")
		fmt.Println("    GET  /api/v1/players/{playerID}/seasons")
		fmt.Println("    POST /api/v1/players/{playerID}/seasons/refresh")
		fmt.Println("    GET  /api/v1/players/{playerID}/seasons/export")
		fmt.Println("    GET  /api/v1/players/{playerID}/medians")
		fmt.Println("    GET  /api/v1/players/{playerID}/advanced")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
