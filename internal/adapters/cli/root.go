package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set by PersistentPreRunE before any subcommand runs
	app *App
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand(build AppBuilder) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "arcraiders",
		Short: "ARC Raiders companion - track quests, inventory and workshop progress",
		Long: `ARC Raiders companion tracks your progress through the game: quest status
and objectives, workshop station upgrades, owned item counts, and a wishlist
derived from whatever you are currently working on. Reference data is synced
from the MetaForge API and cached locally.

Examples:
  arcraiders sync all
  arcraiders quest list --status IN_PROGRESS
  arcraiders quest objective q-gateway-1 obj-1
  arcraiders workshop start workbench_2
  arcraiders inventory inc metal-parts
  arcraiders wishlist list
  arcraiders event upcoming`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			app, err = build(configPath, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app != nil {
				return app.Close()
			}
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.AddCommand(NewQuestCommand())
	rootCmd.AddCommand(NewItemCommand())
	rootCmd.AddCommand(NewInventoryCommand())
	rootCmd.AddCommand(NewWishlistCommand())
	rootCmd.AddCommand(NewWorkshopCommand())
	rootCmd.AddCommand(NewEventCommand())
	rootCmd.AddCommand(NewSyncCommand())

	return rootCmd
}

// Execute runs the root command
func Execute(build AppBuilder) {
	rootCmd := NewRootCommand(build)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
