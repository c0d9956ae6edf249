package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/postgres"
	"github.com/jakechorley/gameday/pkg/utils/logging"
)

var (
	env string
	app *AppContext
)

// NewRootCmd builds the root command with all subcommands registered
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gameday",
		Short: "Gameday - Track volunteer attendance across a season",
		Long:  `A tool for tracking volunteer attendance: manage the roster, seed game dates, record statuses and serve the attendance API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if app != nil && app.Database != nil {
				app.Database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(SeasonDatesCmd())
	rootCmd.AddCommand(ImportRosterCmd())
	rootCmd.AddCommand(ExportReportCmd())
	rootCmd.AddCommand(ListVolunteersCmd())

	return rootCmd
}

// initApp sets up logger, config and the database connection
func initApp(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Debug("Database connection established")

	app = &AppContext{
		Cfg:      cfg,
		Database: database,
		Logger:   logger,
		Ctx:      ctx,
	}

	return nil
}
