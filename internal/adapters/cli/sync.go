package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrisonog/arcraiders-go/internal/domain/syncstate"
)

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync [quests|items|events|all]",
		Short: "Sync reference data from the MetaForge API",
		Long: `Sync reference data from the MetaForge API into the local store. A data
kind is only fetched when its table is empty or its last sync is older than
the configured maximum age; use --force to fetch regardless.

Local progress (quest status, objectives, inventory, wishlist) is never
touched by a sync.

Examples:
  arcraiders sync all
  arcraiders sync quests
  arcraiders sync items --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "all"
			if len(args) == 1 {
				target = args[0]
			}

			kinds := syncstate.Kinds()
			if target != "all" {
				kind := syncstate.DataKind(target)
				switch kind {
				case syncstate.KindQuests, syncstate.KindItems, syncstate.KindEvents:
					kinds = []syncstate.DataKind{kind}
				default:
					return fmt.Errorf("unknown sync target: %s (use quests, items, events or all)", target)
				}
			}

			ctx := context.Background()
			for _, kind := range kinds {
				var err error
				if force {
					err = app.Sync.Refresh(ctx, kind)
				} else {
					err = app.Sync.Sync(ctx, kind)
				}
				if err != nil {
					return fmt.Errorf("sync %s failed: %w", kind, err)
				}
				fmt.Printf("✓ %s synced\n", kind)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Fetch even if the local data is fresh")

	return cmd
}
