package main

import (
	"github.com/spf13/cobra"

	"github.com/nasiloldu/backend/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the fixed categories, starter reference rows and the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		if err := database.SeedDefaults(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
		log.Info().Msg("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
