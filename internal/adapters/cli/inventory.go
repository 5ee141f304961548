package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewInventoryCommand creates the inventory command with subcommands
func NewInventoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Track owned item quantities",
		Long: `Track how many of each item you own. Quantities never go below zero.

Examples:
  arcraiders inventory list
  arcraiders inventory set metal-parts 12
  arcraiders inventory inc metal-parts
  arcraiders inventory dec metal-parts`,
	}

	cmd.AddCommand(newInventoryListCommand())
	cmd.AddCommand(newInventorySetCommand())
	cmd.AddCommand(newInventoryIncCommand())
	cmd.AddCommand(newInventoryDecCommand())

	return cmd
}

func newInventoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entries, err := app.Inventory.ListEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to list inventory: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Inventory is empty.")
				return nil
			}

			fmt.Printf("%-28s %-32s %s\n", "ID", "NAME", "QTY")
			for _, entry := range entries {
				fmt.Printf("%-28s %-32s %d\n",
					truncate(entry.ItemID, 28),
					truncate(entry.ItemName, 32),
					entry.Quantity)
			}

			collected, err := app.Inventory.CollectedCount(ctx)
			if err == nil {
				fmt.Printf("\n%d distinct items collected\n", collected)
			}
			return nil
		},
	}
}

// catalogName resolves an item's display name and icon from the cached
// catalog, falling back to the raw id for items not yet synced
func catalogName(ctx context.Context, itemID string) (string, string) {
	i, err := app.Items.FindByID(ctx, itemID)
	if err != nil {
		return itemID, ""
	}
	return i.Name, i.ImageURL
}

func newInventorySetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <quantity>",
		Short: "Set the owned quantity of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}

			ctx := context.Background()
			name, imageURL := catalogName(ctx, args[0])
			if err := app.Inventory.Set(ctx, args[0], name, quantity, imageURL); err != nil {
				return err
			}
			fmt.Printf("✓ %s set to %d\n", args[0], quantity)
			return nil
		},
	}
}

func newInventoryIncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inc <item-id>",
		Short: "Add one to the owned quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			name, imageURL := catalogName(ctx, args[0])
			if err := app.Inventory.Increment(ctx, args[0], name, imageURL); err != nil {
				return err
			}
			fmt.Printf("✓ %s +1\n", args[0])
			return nil
		},
	}
}

func newInventoryDecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dec <item-id>",
		Short: "Remove one from the owned quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Inventory.Decrement(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ %s -1\n", args[0])
			return nil
		},
	}
}
