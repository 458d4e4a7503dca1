package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the embedded schema migrations",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		switch direction {
		case "up":
			n, err := database.Migrate(a.db, a.cfg.Database.Driver)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "applied %d migration(s)", n)
		case "down":
			steps, _ := cmd.Flags().GetInt("steps")
			n, err := database.MigrateDown(a.db, a.cfg.Database.Driver, steps)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "rolled back %d migration(s)", n)
		default:
			return fmt.Errorf("unknown direction %q, want up or down", direction)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the system entity types and meeting types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := database.Seed(cmd.Context(), a.store); err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "system types seeded")
		return nil
	},
}

func init() {
	migrateCmd.Flags().Int("steps", 1, "migrations to roll back with down (0 means all)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
