package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// NewSignupCmd creates the signup command
func NewSignupCmd(app App) *cobra.Command {
	var firstName, lastName, email, phone, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new SmartPest account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathSignup, map[string]string{
				"first_name": firstName,
				"last_name":  lastName,
				"email":      email,
				"phone":      phone,
				"password":   password,
			})
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (optional)")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

// NewForgotPasswordCmd creates the forgot-password command
func NewForgotPasswordCmd(app App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathForgotPassword, map[string]string{
				"email": email,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the account")

	return cmd
}
