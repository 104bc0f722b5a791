package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avstrong/hotel/internal/app"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/logger"
)

func serveCmd(l *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booking HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(l)
		},
	}
}

func roomsCmd(l *logger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "Print the configured room inventory and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			rooms, err := app.LoadCatalog(cfg)
			if err != nil {
				return err
			}

			app.LogInventory(l, rooms.ListTypes())

			return nil
		},
	}
}

func serve(l *logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return app.Run(l, cfg)
}

func main() {
	_ = godotenv.Load()

	l := logger.New(log.Default())

	rootCmd := &cobra.Command{
		Use:           "hotel",
		Short:         "Hotel room reservation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(l)
		},
	}

	rootCmd.AddCommand(serveCmd(l), roomsCmd(l))

	var exitCode int

	if err := rootCmd.Execute(); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
