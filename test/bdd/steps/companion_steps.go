package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/harrisonog/arcraiders-go/internal/adapters/persistence"
	appinventory "github.com/harrisonog/arcraiders-go/internal/application/inventory"
	"github.com/harrisonog/arcraiders-go/internal/application/progression"
	appwishlist "github.com/harrisonog/arcraiders-go/internal/application/wishlist"
	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
	"github.com/harrisonog/arcraiders-go/internal/domain/shared"
	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/database"
	"github.com/harrisonog/arcraiders-go/internal/infrastructure/logging"
)

// stationDefs collects the workshop levels declared by a scenario and serves
// them as the bundled level definitions
type stationDefs struct {
	upgrades []*workshop.Upgrade
}

func (p *stationDefs) AllUpgrades() []*workshop.Upgrade { return p.upgrades }

func (p *stationDefs) StationMetadata(stationID string) (*workshop.StationMetadata, bool) {
	for _, u := range p.upgrades {
		if u.StationID == stationID {
			return &workshop.StationMetadata{StationID: stationID, StationName: stationID}, true
		}
	}
	return nil, false
}

func (p *stationDefs) AllStationMetadata() []*workshop.StationMetadata {
	seen := make(map[string]bool)
	var out []*workshop.StationMetadata
	for _, u := range p.upgrades {
		if !seen[u.StationID] {
			seen[u.StationID] = true
			out = append(out, &workshop.StationMetadata{StationID: u.StationID, StationName: u.StationID})
		}
	}
	return out
}

// companionContext wires a fresh in-memory store with the progression,
// wishlist and inventory services for each scenario
type companionContext struct {
	questRepo    *persistence.GormQuestRepository
	workshopRepo *persistence.GormWorkshopRepository
	questSvc     *progression.QuestService
	workshopSvc  *progression.WorkshopService
	wishlistSvc  *appwishlist.Service
	inventorySvc *appinventory.Service
	defs         *stationDefs
	lastQuestID  string
	err          error
}

func (cc *companionContext) reset() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}

	logger := logging.NewNopLogger()
	clock := shared.NewMockClock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	questRepo := persistence.NewGormQuestRepository(db, nil)
	workshopRepo := persistence.NewGormWorkshopRepository(db, nil)
	inventoryRepo := persistence.NewGormInventoryRepository(db, nil)
	wishlistRepo := persistence.NewGormWishlistRepository(db, nil)

	cc.defs = &stationDefs{}
	cc.questRepo = questRepo
	cc.workshopRepo = workshopRepo
	cc.wishlistSvc = appwishlist.NewService(wishlistRepo, inventoryRepo, clock, logger)
	cc.inventorySvc = appinventory.NewService(inventoryRepo, logger)
	cc.questSvc = progression.NewQuestService(questRepo, inventoryRepo, cc.wishlistSvc, logger)
	cc.workshopSvc = progression.NewWorkshopService(workshopRepo, cc.defs, inventoryRepo, cc.wishlistSvc, logger)
	cc.lastQuestID = ""
	cc.err = nil
	return nil
}

// Quest steps

func (cc *companionContext) aQuestWithObjectives(questID string, table *godog.Table) error {
	q := &quest.Quest{
		ID:                  questID,
		Name:                questID,
		Status:              quest.StatusNotStarted,
		CompletedObjectives: map[string]bool{},
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		q.Objectives = append(q.Objectives, quest.Objective{
			ID:          row.Cells[0].Value,
			Description: row.Cells[1].Value,
			OrderIndex:  i - 1,
		})
	}
	cc.lastQuestID = questID
	return cc.questRepo.Save(context.Background(), q)
}

func (cc *companionContext) theQuestRequiresItem(quantity int, itemID string) error {
	q, err := cc.questRepo.FindByID(context.Background(), cc.lastQuestID)
	if err != nil {
		return err
	}
	q.RequiredItems = append(q.RequiredItems, shared.RequiredItem{
		ItemID:   itemID,
		ItemName: itemID,
		Quantity: quantity,
	})
	return cc.questRepo.Save(context.Background(), q)
}

func (cc *companionContext) iToggleObjective(objectiveID, questID string) error {
	_, err := cc.questSvc.ToggleObjective(context.Background(), questID, objectiveID)
	return err
}

func (cc *companionContext) iSetQuestStatus(questID, status string) error {
	parsed, err := quest.ParseStatus(status)
	if err != nil {
		return err
	}
	return cc.questSvc.SetStatus(context.Background(), questID, parsed)
}

func (cc *companionContext) theQuestStatusShouldBe(expected string) error {
	q, err := cc.questRepo.FindByID(context.Background(), cc.lastQuestID)
	if err != nil {
		return err
	}
	if string(q.Status) != expected {
		return fmt.Errorf("expected quest status %s, got %s", expected, q.Status)
	}
	return nil
}

// Wishlist steps

func (cc *companionContext) theWishlistShouldNeedItem(quantity int, itemID string) error {
	entry, err := cc.wishlistSvc.GetEntry(context.Background(), itemID)
	if err != nil {
		return err
	}
	if entry.QuantityNeeded != quantity {
		return fmt.Errorf("expected wishlist to need %d of %s, got %d", quantity, itemID, entry.QuantityNeeded)
	}
	return nil
}

func (cc *companionContext) theWishlistShouldNotContainItem(itemID string) error {
	_, err := cc.wishlistSvc.GetEntry(context.Background(), itemID)
	if err == nil {
		return fmt.Errorf("expected no wishlist entry for %s", itemID)
	}
	return nil
}

func (cc *companionContext) iManuallyAddItem(quantity int, itemID string) error {
	return cc.wishlistSvc.ManualAdd(context.Background(), itemID, itemID, quantity, "")
}

func (cc *companionContext) iOwnItem(quantity int, itemID string) error {
	return cc.inventorySvc.Set(context.Background(), itemID, itemID, quantity, "")
}

func (cc *companionContext) theWishlistProgressShouldBe(itemID string, percent int) error {
	entries, err := cc.wishlistSvc.ListWithInventory(context.Background())
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.ItemID != itemID {
			continue
		}
		got := int(entry.PercentComplete() * 100)
		if got != percent {
			return fmt.Errorf("expected %d percent progress for %s, got %d", percent, itemID, got)
		}
		return nil
	}
	return fmt.Errorf("no wishlist entry for %s", itemID)
}

// Workshop steps

func (cc *companionContext) aWorkshopStationWithLevels(stationID string, table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		level, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return fmt.Errorf("bad level number %q: %w", row.Cells[1].Value, err)
		}
		u := &workshop.Upgrade{
			LevelID:     row.Cells[0].Value,
			StationID:   stationID,
			LevelNumber: level,
			Name:        row.Cells[0].Value,
		}
		if itemID := row.Cells[2].Value; itemID != "" {
			quantity, err := strconv.Atoi(row.Cells[3].Value)
			if err != nil {
				return fmt.Errorf("bad quantity %q: %w", row.Cells[3].Value, err)
			}
			u.RequiredItems = []shared.RequiredItem{
				{ItemID: itemID, ItemName: itemID, Quantity: quantity},
			}
		}
		cc.defs.upgrades = append(cc.defs.upgrades, u)
	}
	return cc.workshopSvc.InitializeStations(context.Background())
}

func (cc *companionContext) iStartUpgrade(levelID string) error {
	return cc.workshopSvc.StartUpgrade(context.Background(), levelID)
}

func (cc *companionContext) iTryToStartUpgrade(levelID string) error {
	cc.err = cc.workshopSvc.StartUpgrade(context.Background(), levelID)
	return nil
}

func (cc *companionContext) iCompleteUpgrade(levelID string) error {
	return cc.workshopSvc.CompleteUpgrade(context.Background(), levelID)
}

func (cc *companionContext) levelShouldBe(levelID, expected string) error {
	u, err := cc.workshopRepo.FindByID(context.Background(), levelID)
	if err != nil {
		return err
	}
	if string(u.Status) != expected {
		return fmt.Errorf("expected level %s to be %s, got %s", levelID, expected, u.Status)
	}
	return nil
}

func (cc *companionContext) stationShouldBeAtLevel(stationID string, current, max int) error {
	station, err := cc.workshopSvc.GetStation(context.Background(), stationID)
	if err != nil {
		return err
	}
	if station.CurrentLevel() != current || station.MaxLevel() != max {
		return fmt.Errorf("expected station %s at level %d of %d, got %d of %d",
			stationID, current, max, station.CurrentLevel(), station.MaxLevel())
	}
	return nil
}

func (cc *companionContext) theOperationShouldFail() error {
	if cc.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	return nil
}

// InitializeCompanionScenario registers every step against one shared context
// backed by a fresh in-memory store per scenario
func InitializeCompanionScenario(ctx *godog.ScenarioContext) {
	cc := &companionContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, cc.reset()
	})

	ctx.Step(`^a quest "([^"]*)" with objectives:$`, cc.aQuestWithObjectives)
	ctx.Step(`^the quest requires (\d+) of item "([^"]*)"$`, cc.theQuestRequiresItem)
	ctx.Step(`^I toggle objective "([^"]*)" of quest "([^"]*)"$`, cc.iToggleObjective)
	ctx.Step(`^I set quest "([^"]*)" status to "([^"]*)"$`, cc.iSetQuestStatus)
	ctx.Step(`^the quest status should be "([^"]*)"$`, cc.theQuestStatusShouldBe)

	ctx.Step(`^the wishlist should need (\d+) of item "([^"]*)"$`, cc.theWishlistShouldNeedItem)
	ctx.Step(`^the wishlist should not contain item "([^"]*)"$`, cc.theWishlistShouldNotContainItem)
	ctx.Step(`^I manually add (\d+) of item "([^"]*)" to the wishlist$`, cc.iManuallyAddItem)
	ctx.Step(`^I own (\d+) of item "([^"]*)"$`, cc.iOwnItem)
	ctx.Step(`^the wishlist progress for item "([^"]*)" should be (\d+) percent$`, cc.theWishlistProgressShouldBe)

	ctx.Step(`^a workshop station "([^"]*)" with levels:$`, cc.aWorkshopStationWithLevels)
	ctx.Step(`^I start upgrade "([^"]*)"$`, cc.iStartUpgrade)
	ctx.Step(`^I try to start upgrade "([^"]*)"$`, cc.iTryToStartUpgrade)
	ctx.Step(`^I complete upgrade "([^"]*)"$`, cc.iCompleteUpgrade)
	ctx.Step(`^level "([^"]*)" should be "([^"]*)"$`, cc.levelShouldBe)
	ctx.Step(`^station "([^"]*)" should be at level (\d+) of (\d+)$`, cc.stationShouldBeAtLevel)
	ctx.Step(`^the operation should fail$`, cc.theOperationShouldFail)
}
