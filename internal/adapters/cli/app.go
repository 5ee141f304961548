package cli

import (
	"gorm.io/gorm"

	"go.uber.org/zap"

	appinventory "github.com/harrisonog/arcraiders-go/internal/application/inventory"
	"github.com/harrisonog/arcraiders-go/internal/application/progression"
	appsync "github.com/harrisonog/arcraiders-go/internal/application/sync"
	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/event"
	"github.com/harrisonog/arcraiders-go/internal/domain/item"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/config"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/database"
)

// App bundles everything the CLI commands need
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	DB        *gorm.DB
	Quests    *progression.QuestService
	Workshop  *progression.WorkshopService
	Wishlist  *appwishlist.Service
	Inventory *appinventory.Service
	Items     item.Repository
	Events    event.Repository
	Sync      *appsync.Service
	Clock     shared.Clock
}

// Close releases the app's resources
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.DB != nil {
		return database.Close(a.DB)
	}
	return nil
}

// AppBuilder constructs the app once flags are parsed
type AppBuilder func(configPath string, verbose bool) (*App, error)
