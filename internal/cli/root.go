// Package cli implements the command-line entry point.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roster-manager/backend/internal/config"
	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/server"
)

// Version info, set by the main package from build flags.
var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:           "roster-manager",
	Short:         "Serve the roster manager web application",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "roster-manager.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
}

// SetVersion records the build version shown by the version command and health endpoint.
func SetVersion(v, built string) {
	version = v
	buildTime = built
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log, version)
	if err != nil {
		return err
	}

	printBanner(cmd, cfg)
	log.Info("server starting", "addr", cfg.GetServerAddr(), "photos", cfg.Photos.Backend)

	return srv.Run(ctx)
}

func printBanner(cmd *cobra.Command, cfg *config.AppConfig) {
	photos := cfg.Storage.PhotosDirectory
	if cfg.Photos.Backend == config.BackendMinIO {
		photos = "minio://" + cfg.Photos.MinIO.Bucket + "/" + cfg.Photos.MinIO.Prefix
	}

	cmd.Printf("\n")
	cmd.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	cmd.Printf("║           Roster Manager Server                           ║\n")
	cmd.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	cmd.Printf("║  Version:    %-45s║\n", version)
	cmd.Printf("║  Build Time: %-45s║\n", buildTime)
	cmd.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	cmd.Printf("║  Config:    %-46s║\n", configPath)
	cmd.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	cmd.Printf("║  Uploads:   %-46s║\n", cfg.Storage.UploadsDirectory)
	cmd.Printf("║  Photos:    %-46s║\n", photos)
	cmd.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	cmd.Printf("\n")
}
