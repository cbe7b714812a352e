package commands

import (
	"github.com/spf13/cobra"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// NewAdminCmd creates the admin dashboard command
func NewAdminCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "admin",
		Short: "Open the admin dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), router.PathAdmin, nil)
		},
	}
}

// newManageCmd builds a management command with list/add/update/delete
// subcommands over one admin page. Which actions exist depends on the page.
func newManageCmd(app App, use, short, path string, actions []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), path, map[string]string{"action": "list"})
		},
	}

	for _, action := range actions {
		cmd.AddCommand(newManageActionCmd(app, path, action))
	}

	return cmd
}

func newManageActionCmd(app App, path, action string) *cobra.Command {
	var id, name, description, imageURL, targetPest, dosage, safety string

	sub := &cobra.Command{
		Use: action,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Dispatch(cmd.Context(), path, map[string]string{
				"action":      action,
				"id":          id,
				"name":        name,
				"description": description,
				"image_url":   imageURL,
				"target_pest": targetPest,
				"dosage":      dosage,
				"safety":      safety,
			})
		},
	}

	switch action {
	case "list":
		sub.Short = "List entries"
	case "add":
		sub.Short = "Add an entry"
		sub.Flags().StringVar(&name, "name", "", "Name")
		sub.Flags().StringVar(&description, "description", "", "Description")
		sub.Flags().StringVar(&imageURL, "image-url", "", "Image URL")
		sub.Flags().StringVar(&targetPest, "target-pest", "", "Target pest")
		sub.Flags().StringVar(&dosage, "dosage", "", "Dosage")
		sub.Flags().StringVar(&safety, "safety", "", "Safety precautions")
	case "update":
		sub.Short = "Update an entry"
		sub.Flags().StringVar(&id, "id", "", "Entry ID")
		sub.Flags().StringVar(&name, "name", "", "Name")
		sub.Flags().StringVar(&description, "description", "", "Description")
		sub.Flags().StringVar(&imageURL, "image-url", "", "Image URL")
		sub.Flags().StringVar(&targetPest, "target-pest", "", "Target pest")
		sub.Flags().StringVar(&dosage, "dosage", "", "Dosage")
		sub.Flags().StringVar(&safety, "safety", "", "Safety precautions")
	case "delete":
		sub.Short = "Delete an entry"
		sub.Flags().StringVar(&id, "id", "", "Entry ID")
	}

	return sub
}

// NewManagePestsCmd creates the pest reference management command
func NewManagePestsCmd(app App) *cobra.Command {
	return newManageCmd(app, "manage-pests", "Manage pest reference data (admin)",
		router.PathManagePests, []string{"list", "add", "update", "delete"})
}

// NewManagePesticidesCmd creates the pesticide reference management command
func NewManagePesticidesCmd(app App) *cobra.Command {
	return newManageCmd(app, "manage-pesticides", "Manage pesticide reference data (admin)",
		router.PathManagePesticides, []string{"list", "add", "update", "delete"})
}

// NewManageFeedbackCmd creates the feedback moderation command
func NewManageFeedbackCmd(app App) *cobra.Command {
	return newManageCmd(app, "manage-feedback", "Moderate submitted feedback (admin)",
		router.PathManageFeedback, []string{"list", "delete"})
}

// NewUsersCmd creates the user administration command
func NewUsersCmd(app App) *cobra.Command {
	return newManageCmd(app, "users", "Manage user accounts (admin)",
		router.PathUserManagement, []string{"list", "delete"})
}
