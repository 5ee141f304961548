package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// NewWishlistCommand creates the wishlist command with subcommands
func NewWishlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Track items you still need",
		Long: `Track items you still need. Entries are added automatically when you start
quests and workshop upgrades, and can be added by hand. Automatic entries
disappear when nothing demands them anymore; manual entries stay until removed.

Examples:
  arcraiders wishlist list
  arcraiders wishlist add metal-parts 10
  arcraiders wishlist qty metal-parts 4
  arcraiders wishlist remove metal-parts`,
	}

	cmd.AddCommand(newWishlistListCommand())
	cmd.AddCommand(newWishlistAddCommand())
	cmd.AddCommand(newWishlistRemoveCommand())
	cmd.AddCommand(newWishlistQtyCommand())

	return cmd
}

func newWishlistListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wishlist entries with collection progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Wishlist.ListWithInventory(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list wishlist: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("Wishlist is empty.")
				return nil
			}

			fmt.Printf("%-28s %-10s %-8s %-7s %s\n", "ITEM", "HAVE/NEED", "DONE", "MANUAL", "SOURCES")
			for _, entry := range entries {
				sources := make([]string, 0, len(entry.Sources))
				for ref := range entry.Sources {
					sources = append(sources, ref)
				}
				sort.Strings(sources)

				fmt.Printf("%-28s %3d/%-6d %-8s %-7s %s\n",
					truncate(entry.ItemName, 28),
					entry.QuantityOwned, entry.QuantityNeeded,
					percent(entry.PercentComplete()),
					checkmark(entry.IsManual),
					truncate(strings.Join(sources, ","), 40))
			}
			return nil
		},
	}
}

func newWishlistAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item-id> <quantity>",
		Short: "Add an item to the wishlist by hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}

			ctx := context.Background()
			name, imageURL := catalogName(ctx, args[0])
			if err := app.Wishlist.ManualAdd(ctx, args[0], name, quantity, imageURL); err != nil {
				return err
			}
			fmt.Printf("✓ %s added to wishlist (x%d)\n", args[0], quantity)
			return nil
		},
	}
}

func newWishlistRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an entry from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Wishlist.ManualRemove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ %s removed from wishlist\n", args[0])
			return nil
		},
	}
}

func newWishlistQtyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "qty <item-id> <quantity>",
		Short: "Override the needed quantity of an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity: %s", args[1])
			}
			if err := app.Wishlist.SetQuantity(context.Background(), args[0], quantity); err != nil {
				return err
			}
			fmt.Printf("✓ %s needed quantity set to %d\n", args[0], quantity)
			return nil
		},
	}
}
