package main

import (
	"context"
	"fmt"
	"os"

	_ "flowwork/docs"
	"flowwork/internal/config"
	"flowwork/internal/logger"
	"flowwork/internal/migrate"
	"flowwork/internal/server"
	"flowwork/migrations"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const appName = "flowwork"

// @title           Flowwork API
// @version         1.0
// @description     Board grid engine: typed columns, formula columns, group aggregates and GL-account guessing for purchase lines.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Board grid engine API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
	cmd.AddCommand(migrateCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the postgres schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if cfg.DBDriver != config.DriverPostgres {
				return fmt.Errorf("migrations target postgres, DB_DRIVER is %q", cfg.DBDriver)
			}

			ctx := cmd.Context()
			if err := migrate.Run(migrations.FS, cfg.MigrationURL(), args[0]); err != nil {
				log.Error(ctx, "migrate "+args[0], err)
				return err
			}
			version, dirty, err := migrate.Version(migrations.FS, cfg.MigrationURL())
			if err != nil {
				return err
			}
			log.Event(ctx, zerolog.InfoLevel).
				Uint("version", version).
				Bool("dirty", dirty).
				Msg("migration complete")
			return nil
		},
	}
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Options{
		ServiceName: appName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
	if !dotenv {
		log.Debug(context.Background(), "no .env file found, using environment")
	}
	return cfg, log, nil
}

func serve(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	s, err := server.Init(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "server initialization failed", err)
		return err
	}
	return s.Run()
}
