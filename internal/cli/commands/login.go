package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// NewLoginCmd creates the login command
func NewLoginCmd(app App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to SmartPest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathLogin, map[string]string{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set SMARTPEST_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set SMARTPEST_PASSWORD, will prompt if not provided)")

	return cmd
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Session().Logout()
			cmd.Println("✓ Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.Session().State()
			if !state.IsLoggedIn {
				cmd.Println("Not logged in.")
				return nil
			}
			cmd.Printf("%s (%s), role %s\n", state.User.FullName(), state.User.Email, state.User.Role)
			return nil
		},
	}
}
