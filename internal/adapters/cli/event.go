package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewEventCommand creates the event command with subcommands
func NewEventCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Browse map event timers",
		Long: `Browse the recurring map event schedule. Times are stored in UTC and shown
in your local timezone.

Examples:
  arcraiders event list
  arcraiders event list --map "Dam Battlegrounds"
  arcraiders event upcoming`,
	}

	cmd.AddCommand(newEventListCommand())
	cmd.AddCommand(newEventUpcomingCommand())

	return cmd
}

func newEventListCommand() *cobra.Command {
	var mapFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List map events with their schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			events, err := app.Events.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}
			if mapFilter != "" {
				events, err = app.Events.FindByMap(ctx, mapFilter)
				if err != nil {
					return fmt.Errorf("failed to list events: %w", err)
				}
			}

			if len(events) == 0 {
				fmt.Println("No events found. Run 'arcraiders sync events' first.")
				return nil
			}

			local := time.Local
			for _, e := range events {
				fmt.Printf("%s (%s)\n", e.Name, e.Map)
				if e.Description != "" {
					fmt.Printf("  %s\n", e.Description)
				}
				for _, window := range e.Times {
					fmt.Printf("  %s\n", window.FormatDisplay(app.Clock, local))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapFilter, "map", "", "Filter by map name")

	return cmd
}

func newEventUpcomingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "List events starting within the next two hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Events.FindAll(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			local := time.Local
			found := false
			for _, e := range events {
				window, ok := e.UpcomingWindow(app.Clock)
				if !ok {
					continue
				}
				found = true
				fmt.Printf("%-32s %-24s %s\n",
					truncate(e.Name, 32), truncate(e.Map, 24),
					window.FormatDisplay(app.Clock, local))
			}
			if !found {
				fmt.Println("No events starting within the next two hours.")
			}
			return nil
		},
	}
}
