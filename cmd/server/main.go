package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"

	"github.com/example/stylehub/internal/config"
	"github.com/example/stylehub/internal/database"
	"github.com/example/stylehub/internal/logger"
	"github.com/example/stylehub/internal/middleware"
	"github.com/example/stylehub/internal/routes"
	"github.com/example/stylehub/internal/seed"
)

const serviceName = "stylehub"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.LogLevel)
	slog.SetDefault(log)

	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.Connect(connectCtx, cfg.DatabaseURL, cfg.Debug())
	cancel()
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if cfg.SeedOnStartup {
		res, err := seed.Load(context.Background(), db)
		if err != nil {
			log.Error("seeding sample data failed", "error", err)
			os.Exit(1)
		}
		log.Info("sample data", "brands", res.Brands, "products", res.Products, "skipped", res.Skipped)
	}

	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" && cfg.RateLimitMax > 0 {
		limiterStorage, err = middleware.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, rate limiting in memory", "error", err)
		}
	}

	app := routes.NewApp(routes.Deps{
		DB:        db,
		Config:    cfg,
		Metrics:   middleware.NewMetrics(serviceName),
		Limiter:   limiterStorage,
		AccessLog: true,
	})

	go func() {
		log.Info("starting server", "port", cfg.AppPort)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Error("fiber.Listen error", "error", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-and-storage": func(ctx context.Context) error {
				if err := app.ShutdownWithContext(ctx); err != nil {
					return err
				}
				if limiterStorage != nil {
					if err := limiterStorage.Close(); err != nil {
						log.Warn("closing limiter storage", "error", err)
					}
				}
				return database.Close(db)
			},
		},
	)
	exitCode := <-wait
	os.Exit(exitCode)
}
