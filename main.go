// main.go
package main

import (
	"context"
	"log"
	"time"

	"clothing-shop/cmd"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/wire"
	"clothing-shop/pkg/cache"
	"clothing-shop/pkg/database"
	"clothing-shop/pkg/sigctx"
	"clothing-shop/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	configPath := pflag.String("config", ".env", "path to an env-style config file")
	pflag.Parse()

	// Load config
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug, true)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := sigctx.NotifyContext()
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	logger.Info("Database connected successfully", zap.String("database", config.Database.Name))

	if err := repository.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("Some indexes could not be created", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)

	var opts wire.Options
	if config.Redis.Addr != "" {
		limiter, err := cache.NewLimiter(
			config.Redis.Addr,
			config.Redis.Password,
			config.Redis.DB,
			config.Redis.LoginLimit,
			time.Duration(config.Redis.WindowSeconds)*time.Second,
		)
		if err != nil {
			logger.Warn("Login rate limiting disabled", zap.Error(err))
		} else {
			defer limiter.Close()
			opts.Limiter = limiter
			logger.Info("Login rate limiting enabled", zap.String("redis", config.Redis.Addr))
		}
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, opts)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}

	logger.Info("Application stopped")
}
