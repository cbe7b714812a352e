package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/cli/commands"
	"github.com/smartpest-dev/smartpest/internal/config"
	"github.com/smartpest-dev/smartpest/internal/logger"
	"github.com/smartpest-dev/smartpest/internal/router"
)

var version = "dev" // Will be set during build

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smartpest",
		Short: "SmartPest - Pest identification and management",
		Long: `SmartPest CLI - Identify crop pests from images and manage pest data.

Upload an image to identify a pest, browse pest and pesticide reference
data, save detection reports, and administer the system.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathHome, nil)
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("smartpest version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd(app))
	rootCmd.AddCommand(commands.NewLogoutCmd(app))
	rootCmd.AddCommand(commands.NewWhoamiCmd(app))
	rootCmd.AddCommand(commands.NewSignupCmd(app))
	rootCmd.AddCommand(commands.NewForgotPasswordCmd(app))
	rootCmd.AddCommand(commands.NewDetectCmd(app))
	rootCmd.AddCommand(commands.NewReportsCmd(app))
	rootCmd.AddCommand(commands.NewPestsCmd(app))
	rootCmd.AddCommand(commands.NewPesticidesCmd(app))
	rootCmd.AddCommand(commands.NewFeedbackCmd(app))
	rootCmd.AddCommand(commands.NewAdminCmd(app))
	rootCmd.AddCommand(commands.NewManagePestsCmd(app))
	rootCmd.AddCommand(commands.NewManagePesticidesCmd(app))
	rootCmd.AddCommand(commands.NewManageFeedbackCmd(app))
	rootCmd.AddCommand(commands.NewUsersCmd(app))

	return rootCmd
}

// Execute builds the application and runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	app, err := newApp(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
