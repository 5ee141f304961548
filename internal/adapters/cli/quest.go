package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/harrisonog/arcraiders-go/internal/domain/quest"
)

// NewQuestCommand creates the quest command with subcommands
func NewQuestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Track quest progress",
		Long: `Track quest progress: list the catalog, inspect a quest's objectives and
required items, change quest status, and toggle individual objectives.

Starting a quest puts its required items on the wishlist; completing it takes
them off again.

Examples:
  arcraiders quest list
  arcraiders quest list --status IN_PROGRESS
  arcraiders quest show q-gateway-1
  arcraiders quest status q-gateway-1 IN_PROGRESS
  arcraiders quest objective q-gateway-1 obj-1`,
	}

	cmd.AddCommand(newQuestListCommand())
	cmd.AddCommand(newQuestShowCommand())
	cmd.AddCommand(newQuestStatusCommand())
	cmd.AddCommand(newQuestObjectiveCommand())

	return cmd
}

func newQuestListCommand() *cobra.Command {
	var (
		statusFilter string
		chainFilter  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status quest.Status
			if statusFilter != "" {
				parsed, err := quest.ParseStatus(statusFilter)
				if err != nil {
					return err
				}
				status = parsed
			}

			quests, err := app.Quests.ListQuests(context.Background(), status, chainFilter)
			if err != nil {
				return fmt.Errorf("failed to list quests: %w", err)
			}

			if len(quests) == 0 {
				fmt.Println("No quests found. Run 'arcraiders sync quests' first.")
				return nil
			}

			fmt.Printf("%-28s %-32s %-12s %s\n", "ID", "NAME", "STATUS", "OBJECTIVES")
			for _, q := range quests {
				fmt.Printf("%-28s %-32s %-12s %d/%d\n",
					truncate(q.ID, 28),
					truncate(q.Name, 32),
					q.Status,
					q.CompletedCount(), len(q.Objectives))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (NOT_STARTED, IN_PROGRESS, COMPLETED)")
	cmd.Flags().StringVar(&chainFilter, "chain", "", "Filter by quest chain")

	return cmd
}

func newQuestShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <quest-id>",
		Short: "Show a quest with objectives and required items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.Quests.GetQuestWithInventory(context.Background(), args[0])
			if err != nil {
				return err
			}
			q := detail.Quest

			fmt.Printf("%s (%s)\n", q.Name, q.ID)
			fmt.Printf("  Status:   %s\n", q.Status)
			if q.QuestChain != "" {
				fmt.Printf("  Chain:    %s\n", q.QuestChain)
			}
			if q.MapLocation != "" {
				fmt.Printf("  Map:      %s\n", q.MapLocation)
			}
			if q.XPReward != nil {
				fmt.Printf("  XP:       %d\n", *q.XPReward)
			}
			if q.Description != "" {
				fmt.Printf("  %s\n", q.Description)
			}

			if len(q.Objectives) > 0 {
				fmt.Println("\nObjectives:")
				objectives := make([]quest.Objective, len(q.Objectives))
				copy(objectives, q.Objectives)
				sort.Slice(objectives, func(i, j int) bool {
					return objectives[i].OrderIndex < objectives[j].OrderIndex
				})
				for _, obj := range objectives {
					fmt.Printf("  %s %-24s %s\n",
						checkmark(q.ObjectiveComplete(obj.ID)), obj.ID, obj.Description)
				}
			}

			if len(detail.RequiredItems) > 0 {
				fmt.Println("\nRequired items:")
				for _, required := range detail.RequiredItems {
					fmt.Printf("  %s %-28s %d/%d\n",
						checkmark(required.IsComplete()),
						truncate(required.ItemName, 28),
						required.QuantityOwned, required.QuantityNeeded)
				}
			}

			if len(q.Rewards) > 0 {
				fmt.Println("\nRewards:")
				for _, reward := range q.Rewards {
					fmt.Printf("  %-28s x%d (%s)\n",
						truncate(reward.ItemName, 28), reward.Quantity, reward.Type)
				}
			}
			return nil
		},
	}
}

func newQuestStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <quest-id> <status>",
		Short: "Set quest status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := quest.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := app.Quests.SetStatus(context.Background(), args[0], status); err != nil {
				return err
			}
			fmt.Printf("✓ Quest %s is now %s\n", args[0], status)
			return nil
		},
	}
}

func newQuestObjectiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "objective <quest-id> <objective-id>",
		Short: "Toggle an objective's completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := app.Quests.ToggleObjective(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Objective %s toggled; quest is %s\n", args[1], status)
			return nil
		},
	}
}
