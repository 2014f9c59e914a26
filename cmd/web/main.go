package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/practice-atlas/pkg/server"
	"github.com/de-tools/practice-atlas/pkg/services/config"
	"github.com/de-tools/practice-atlas/pkg/services/practice"
)

var (
	profilesPath string
	serverCfg    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Practice Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.practiceatlas", usr.HomeDir)

	rootCmd.Flags().StringVarP(&profilesPath, "config", "c", defaultPath,
		"Path to the practice profiles file (default is $HOME/.practiceatlas)")
	rootCmd.Flags().StringVar(&serverCfg, "server-config", "",
		"Path to the server settings yaml file (optional)")

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

	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", profilesPath)
	profiles, _ := registry.GetProfiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Storage: `%s`", profile.Name, profile.Storage)
	}

	srvCfg, err := config.LoadServerConfig(serverCfg)
	if err != nil {
		return err
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(srvCfg.Host, srvCfg.Port),
		ShutdownTimeout: time.Duration(srvCfg.ShutdownSeconds) * time.Second,
		Dependencies: server.Dependencies{
			Explorer: practice.NewExplorer(registry),
		},
	})

	return webAPI.Start()
}
