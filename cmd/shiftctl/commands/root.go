package commands

import (
	"context"

	"shiftdesk/app"
	"shiftdesk/config"
	"shiftdesk/database"
	settingsRepo "shiftdesk/database/repository/settings"
	"shiftdesk/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newApp builds the stores the commands operate on. Tests replace it.
var newApp = func(ctx context.Context) (*app.App, error) {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()

	var deps app.Deps
	if cfg.SettingsPersist {
		database.InitDB()
		deps.SettingsRepo = settingsRepo.NewMongoSettingsRepo(database.DB())
	}
	a, err := app.New(cfg, logger, deps)
	if err != nil {
		return nil, err
	}
	if err := a.Settings.Load(ctx); err != nil {
		logger.Warn("shiftctl: using default settings", zap.Error(err))
	}
	return a, nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shiftctl",
	Short: "shiftctl - operator CLI for the shift scheduling stores",
	Long: `shiftctl edits the roster held by the roster service and generates
schedules through the solver, using the same stores as the app server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newRosterCmd())
	rootCmd.AddCommand(newDemandCmd())
	rootCmd.AddCommand(newScheduleCmd())
}
