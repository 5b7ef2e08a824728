package main

import (
	"database/sql"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/server"
	"github.com/agro-tools/ranch-atlas/pkg/services/config"
	"github.com/agro-tools/ranch-atlas/pkg/services/report"
	"github.com/agro-tools/ranch-atlas/pkg/store/cache"
	"github.com/agro-tools/ranch-atlas/pkg/store/ranch"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Ranch Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (optional, RANCH_* env vars also apply)")

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

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ranchStore, err := ranch.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create ranch store: %w", err)
	}

	previewCache := cache.NewMemory(cfg.Cache.PreviewTTL)
	generator := report.NewGenerator(ranchStore, previewCache, cfg.Cache.PreviewTTL)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	logger.Info().Msgf("starting server on %s", addr)

	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Generator: generator,
			Logger:    logger,
		},
	})

	return api.Start()
}
