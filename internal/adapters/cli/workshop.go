package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonog/arcraiders-go/internal/domain/workshop"
)

// NewWorkshopCommand creates the workshop command with subcommands
func NewWorkshopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workshop",
		Short: "Track workshop station upgrades",
		Long: `Track workshop station upgrades. Each station has a chain of levels;
completing a level unlocks the next one. Starting a level puts its required
items on the wishlist.

Examples:
  arcraiders workshop init
  arcraiders workshop list
  arcraiders workshop show workbench
  arcraiders workshop start workbench_2
  arcraiders workshop complete workbench_2`,
	}

	cmd.AddCommand(newWorkshopInitCommand())
	cmd.AddCommand(newWorkshopListCommand())
	cmd.AddCommand(newWorkshopShowCommand())
	cmd.AddCommand(newWorkshopStartCommand())
	cmd.AddCommand(newWorkshopCompleteCommand())
	cmd.AddCommand(newWorkshopStatusCommand())

	return cmd
}

func newWorkshopInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Load the bundled station definitions into the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workshop.InitializeStations(context.Background()); err != nil {
				return err
			}
			fmt.Println("✓ Workshop stations initialized")
			return nil
		},
	}
}

func newWorkshopListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stations with upgrade progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			stations, err := app.Workshop.ListStations(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list stations: %w", err)
			}

			if len(stations) == 0 {
				fmt.Println("No stations found. Run 'arcraiders workshop init' first.")
				return nil
			}

			fmt.Printf("%-16s %-24s %-8s %-9s %s\n", "ID", "NAME", "LEVEL", "PROGRESS", "NEXT")
			for _, station := range stations {
				next := "-"
				if upgrade := station.NextUpgrade(); upgrade != nil {
					next = upgrade.LevelID
				}
				fmt.Printf("%-16s %-24s %d/%-6d %-9s %s\n",
					station.StationID,
					truncate(station.StationName, 24),
					station.CurrentLevel(), station.MaxLevel(),
					percent(station.Progress()),
					next)
			}
			return nil
		},
	}
}

func newWorkshopShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <station-id>",
		Short: "Show a station's levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			station, err := app.Workshop.GetStation(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s) - level %d/%d\n",
				station.StationName, station.StationID,
				station.CurrentLevel(), station.MaxLevel())
			if station.Description != "" {
				fmt.Printf("  %s\n", station.Description)
			}

			fmt.Println("\nLevels:")
			for _, level := range station.Levels {
				fmt.Printf("  %-20s L%-3d %-12s %s\n",
					level.LevelID, level.LevelNumber, level.Status,
					truncate(level.Name, 32))
				for _, required := range level.RequiredItems {
					fmt.Printf("    %-28s x%d\n", truncate(required.ItemName, 28), required.Quantity)
				}
			}
			return nil
		},
	}
}

func newWorkshopStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <level-id>",
		Short: "Start working on an upgrade level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workshop.StartUpgrade(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Upgrade %s started; required items added to wishlist\n", args[0])
			return nil
		},
	}
}

func newWorkshopCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <level-id>",
		Short: "Complete an upgrade level and unlock the next one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workshop.CompleteUpgrade(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Upgrade %s completed\n", args[0])
			return nil
		},
	}
}

func newWorkshopStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <level-id> <status>",
		Short: "Set a level's status directly",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := workshop.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := app.Workshop.SetStatus(context.Background(), args[0], status); err != nil {
				return err
			}
			fmt.Printf("✓ Upgrade %s is now %s\n", args[0], status)
			return nil
		},
	}
}
