package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonog/arcraiders-go/internal/domain/item"
)

// NewItemCommand creates the item command with subcommands
func NewItemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Browse the item catalog",
		Long: `Browse the locally cached item catalog.

Examples:
  arcraiders item list
  arcraiders item list --category MATERIAL
  arcraiders item list --rarity EPIC
  arcraiders item show metal-parts`,
	}

	cmd.AddCommand(newItemListCommand())
	cmd.AddCommand(newItemShowCommand())

	return cmd
}

func newItemListCommand() *cobra.Command {
	var (
		categoryFilter string
		rarityFilter   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var items []*item.Item
			var err error
			switch {
			case categoryFilter != "":
				items, err = app.Items.FindByCategory(ctx, item.ParseCategory(categoryFilter))
			case rarityFilter != "":
				items, err = app.Items.FindByRarity(ctx, item.ParseRarity(rarityFilter))
			default:
				items, err = app.Items.FindAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list items: %w", err)
			}

			if len(items) == 0 {
				fmt.Println("No items found. Run 'arcraiders sync items' first.")
				return nil
			}

			fmt.Printf("%-28s %-32s %-12s %-10s %s\n", "ID", "NAME", "CATEGORY", "RARITY", "QUEST")
			for _, i := range items {
				fmt.Printf("%-28s %-32s %-12s %-10s %s\n",
					truncate(i.ID, 28),
					truncate(i.Name, 32),
					i.Category,
					i.Rarity,
					checkmark(i.IsQuestItem))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFilter, "category", "", "Filter by category (WEAPON, MATERIAL, ...)")
	cmd.Flags().StringVar(&rarityFilter, "rarity", "", "Filter by rarity (COMMON, RARE, ...)")

	return cmd
}

func newItemShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show a catalog item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := app.Items.FindByID(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s)\n", i.Name, i.ID)
			fmt.Printf("  Category: %s\n", i.Category)
			fmt.Printf("  Rarity:   %s\n", i.Rarity)
			if i.SellValue != nil {
				fmt.Printf("  Value:    %d\n", *i.SellValue)
			}
			if i.IsQuestItem {
				fmt.Printf("  Needed for quests: %d\n", len(i.NeededForQuests))
			}
			if i.Description != "" {
				fmt.Printf("  %s\n", i.Description)
			}
			if len(i.RecyclingMaterials) > 0 {
				fmt.Println("\nRecycles into:")
				for _, material := range i.RecyclingMaterials {
					fmt.Printf("  %-28s x%d\n", truncate(material.MaterialName, 28), material.Quantity)
				}
			}
			return nil
		},
	}
}
