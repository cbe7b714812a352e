package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// NewDetectCmd creates the detect command
func NewDetectCmd(app App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Identify a pest from an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathPestDetect, map[string]string{
				"image": args[0],
				"save":  strconv.FormatBool(save),
			})
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the detection as a report")

	return cmd
}

// NewReportsCmd creates the reports command
func NewReportsCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List saved detection reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathPestReports, nil)
		},
	}
}
