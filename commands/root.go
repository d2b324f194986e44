package commands

import (
	"fmt"

	"healthtrack/config"
	"healthtrack/database"
	"healthtrack/routers"
	"healthtrack/services"
	"healthtrack/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "healthtrack",
	Short: "HealthTrack - client and program enrollment tracker",
	Long: `HealthTrack keeps track of clients, health programs and the enrollments
between them. It serves a REST API and ships a terminal UI that talks to it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			cfg = config.LoadConfig(envFile)
		} else {
			cfg = config.LoadConfig()
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
			cfg.LogLevel = "debug"
		}
		var err error
		logger, err = utils.NewLogger(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging, including SQL")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, tokenCmd, uiCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openStore opens and migrates the database.
func openStore() (*database.Store, error) {
	store, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func buildServices(store *database.Store) routers.Services {
	return routers.Services{
		Programs:    services.NewProgramService(store),
		Clients:     services.NewClientService(store),
		Enrollments: services.NewEnrollmentService(store, cfg.BulkConcurrency),
		Stats:       services.NewStatsService(store),
	}
}
