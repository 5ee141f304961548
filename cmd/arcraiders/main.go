package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harrisonog/arcraiders-go/internal/adapters/api"
	"github.com/harrisonog/arcraiders-go/internal/adapters/cli"
	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	appinventory "github.com/harrisonog/arcraiders-go/internal/application/inventory"
	"github.com/harrisonog/arcraiders-go/internal/application/progression"
	appsync "github.com/harrisonog/arcraiders-go/internal/application/sync"
	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/syncstate"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/assets"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/config"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/database"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/logging"
)

func main() {
	cli.Execute(buildApp)
}

// buildApp wires configuration, storage, the API client and the services
func buildApp(configPath string, verbose bool) (*cli.App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	watcher := persistence.NewStoreWatcher()

	questRepo := persistence.NewGormQuestRepository(db, watcher)
	itemRepo := persistence.NewGormItemRepository(db, watcher)
	inventoryRepo := persistence.NewGormInventoryRepository(db, watcher)
	wishlistRepo := persistence.NewGormWishlistRepository(db, watcher)
	eventRepo := persistence.NewGormEventRepository(db, watcher)
	workshopRepo := persistence.NewGormWorkshopRepository(db, watcher)
	stateRepo := persistence.NewGormSyncStateRepository(db)

	levelProvider := assets.NewWorkshopLevelsProvider()
	descriptions := assets.NewEventDescriptionProvider()

	client := api.NewMetaForgeClientWithConfig(&cfg.API, clock)

	wishlistService := appwishlist.NewService(wishlistRepo, inventoryRepo, clock, logger)
	inventoryService := appinventory.NewService(inventoryRepo, logger)
	questService := progression.NewQuestService(questRepo, inventoryRepo, wishlistService, logger)
	workshopService := progression.NewWorkshopService(workshopRepo, levelProvider, inventoryRepo, wishlistService, logger)
	syncService := appsync.NewService(client, questRepo, itemRepo, eventRepo, stateRepo,
		descriptions, clock, cfg.Sync.MaxAge, logger)

	// Best-effort startup sync of the item catalog; a cold cache should not
	// block the CLI when the network is down
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := syncService.Sync(ctx, syncstate.KindItems); err != nil {
		logger.Warn("startup item sync failed", zap.Error(err))
	}

	return &cli.App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Quests:    questService,
		Workshop:  workshopService,
		Wishlist:  wishlistService,
		Inventory: inventoryService,
		Items:     itemRepo,
		Events:    eventRepo,
		Sync:      syncService,
		Clock:     clock,
	}, nil
}
