package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database file and users table if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		fmt.Printf("Database ready at %s\n", database.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
