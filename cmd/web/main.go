package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/enertools/meter-billing/pkg/runtime/terminal/commands"
	"github.com/enertools/meter-billing/pkg/server"
	"github.com/enertools/meter-billing/pkg/services/config"
	"github.com/enertools/meter-billing/pkg/services/metering"
)

var (
	cfgPath      string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the metering billing web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", commands.DefaultConfigPath(),
		"Path to the .oceancfg profiles file (default is $HOME/.oceancfg)")
	rootCmd.Flags().StringVarP(&settingsPath, "settings", "s", os.Getenv("METERBILL_SETTINGS"),
		"Path to the server settings YAML file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	profiles, _ := registry.GetProfiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Found profile `%s`", profile)
	}

	explorer := metering.NewExplorer(registry, metering.Options{
		HTTPClient: &http.Client{Timeout: settings.RequestTimeout},
		PageSize:   settings.PageSize,
	})

	api := server.NewWebAPI(server.Config{
		Addr:            settings.Addr,
		ShutdownTimeout: settings.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Logger:   logger,
		},
	})

	return api.Start()
}
