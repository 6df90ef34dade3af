package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/userboard/internal/config"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "userboard",
	Short: "Minimal user list/create service with htmx views",
	Long: `userboard serves a small JSON API for listing and creating users,
backed by a single SQLite table, plus optional server-rendered HTML views
for htmx-driven pages.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFile)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
