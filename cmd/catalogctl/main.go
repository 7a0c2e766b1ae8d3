// Command catalogctl is the interactive maintenance console for the catalog
// collections. It imports fixtures, edits records and scrapes product cards
// out of saved HTML listings.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/importer"
	"clothing-shop/pkg/database"
	"clothing-shop/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		fixtures   importer.Fixtures
	)
	pflag.StringVar(&configPath, "config", ".env", "path to an env-style config file")
	pflag.StringVar(&fixtures.Products, "products", "", "products JSON fixture to import on start")
	pflag.StringVar(&fixtures.Users, "users", "", "users JSON fixture to import on start")
	pflag.StringVar(&fixtures.Orders, "orders", "", "orders JSON fixture to import on start")
	pflag.Parse()

	if err := run(configPath, fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, fixtures importer.Fixtures) error {
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout belongs to the menu, so logs go to file only
	logger, err := utils.InitLogger(config.App.LogPath, "catalogctl", config.App.Debug, false)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	// no signal capture: the menu blocks on stdin, so Ctrl-C must end the process
	ctx := context.Background()

	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(closeCtx)
	}()

	if err := repository.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("Some indexes could not be created", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)
	menu := importer.NewMenu(os.Stdin, os.Stdout, repos, importer.NewScraper(importer.DefaultLayout, logger), logger)

	logger.Info("Console started", zap.String("database", config.Database.Name))

	menu.Seed(ctx, fixtures)
	return menu.Run(ctx)
}
