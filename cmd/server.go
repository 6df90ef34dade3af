package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/userboard/internal/config"
	"github.com/ziadkadry99/userboard/internal/db"
	"github.com/ziadkadry99/userboard/internal/server"
	"github.com/ziadkadry99/userboard/internal/users"
	"github.com/ziadkadry99/userboard/internal/views"
)

var (
	serverPort  int
	serverViews bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the userboard HTTP server",
	Long:  `Creates the database if needed and serves the JSON user API and, unless disabled, the htmx HTML views.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}
		if cmd.Flags().Changed("views") {
			cfg.Views.Enabled = serverViews
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		printConfig(cfg)

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Addr:           cfg.Addr(),
			AllowAll:       cfg.Server.AllowAllOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
		}, database)

		if err := registerAllRoutes(srv, database, cfg); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "userboard server v%s starting on %s\n", Version, cfg.Addr())
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  HTML views: %t\n", cfg.Views.Enabled)

		return srv.Start()
	},
}

// registerAllRoutes wires up the feature routes. The JSON API is always
// present; the HTML views only when enabled.
func registerAllRoutes(srv *server.Server, database *db.DB, cfg *config.Config) error {
	r := srv.Router()

	userStore := users.NewStore(database)
	users.RegisterRoutes(r, userStore)

	if cfg.Views.Enabled {
		v, err := views.New(userStore)
		if err != nil {
			return fmt.Errorf("loading views: %w", err)
		}
		v.RegisterRoutes(r)
	}

	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&serverViews, "views", true, "Serve the htmx HTML views (overrides config)")
	rootCmd.AddCommand(serverCmd)
}
