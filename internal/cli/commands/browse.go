package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// NewPestsCmd creates the pests reference-browsing command
func NewPestsCmd(app App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pests [name]",
		Short: "Browse pest reference data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]string{}
			if len(args) == 1 {
				params["pest"] = args[0]
			}
			return app.Dispatch(cmd.Context(), router.PathDescription, params)
		},
	}

	return cmd
}

// NewPesticidesCmd creates the pesticides reference-browsing command
func NewPesticidesCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "pesticides",
		Short: "Browse pesticide reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathDescription, map[string]string{
				"show": "pesticides",
			})
		},
	}
}

// NewFeedbackCmd creates the feedback command
func NewFeedbackCmd(app App) *cobra.Command {
	var message, rating string

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Send feedback to the SmartPest team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathFeedback, map[string]string{
				"message": message,
				"rating":  rating,
			})
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Feedback message")
	cmd.Flags().StringVar(&rating, "rating", "", "Rating from 1 to 5 (optional)")

	return cmd
}
