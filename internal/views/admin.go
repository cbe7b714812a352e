package views

import (
	"context"
	"fmt"

	"github.com/smartpest-dev/smartpest/internal/models"
	"github.com/smartpest-dev/smartpest/internal/router"
)

// AdminDashboard renders the admin landing page with summary counts
// assembled from the collection endpoints.
func (p *Pages) AdminDashboard(ctx context.Context, req *router.Request) error {
	fmt.Fprintln(p.Out, "Admin dashboard")

	count := func(n int, err error) string {
		if err != nil {
			p.Log.Warn().Err(err).Msg("dashboard section unavailable")
			return "unavailable"
		}
		return fmt.Sprintf("%d", n)
	}

	users, usersErr := p.API.ListUsers(ctx)
	reports, reportsErr := p.API.ListReports(ctx)
	feedback, feedbackErr := p.API.ListFeedback(ctx)
	pests, pestsErr := p.API.ListPests(ctx)
	pesticides, pesticidesErr := p.API.ListPesticides(ctx)

	p.table(
		[]string{"SECTION", "COUNT"},
		[][]string{
			{"Users", count(len(users), usersErr)},
			{"Reports", count(len(reports), reportsErr)},
			{"Feedback", count(len(feedback), feedbackErr)},
			{"Pests", count(len(pests), pestsErr)},
			{"Pesticides", count(len(pesticides), pesticidesErr)},
		},
	)

	if !p.Interactive {
		return nil
	}

	destinations := []destination{
		{"Manage pests", router.PathManagePests},
		{"Manage pesticides", router.PathManagePesticides},
		{"Manage feedback", router.PathManageFeedback},
		{"Manage users", router.PathUserManagement},
		{"Back", ""},
	}
	labels := make([]string, len(destinations))
	for i, d := range destinations {
		labels[i] = d.label
	}
	index, err := p.selectOption("Manage", labels)
	if err != nil || destinations[index].path == "" {
		return nil
	}
	return p.Router.Dispatch(ctx, destinations[index].path, nil)
}

// ManagePests renders the pest reference-data management page.
// Actions: list (default), add, update, delete.
func (p *Pages) ManagePests(ctx context.Context, req *router.Request) error {
	switch req.Arg("action") {
	case "", "list":
		pests, err := p.API.ListPests(ctx)
		if err != nil {
			return fmt.Errorf("failed to load pests: %w", err)
		}
		if len(pests) == 0 {
			fmt.Fprintln(p.Out, "No pests found.")
			return nil
		}
		rows := make([][]string, 0, len(pests))
		for _, pest := range pests {
			rows = append(rows, []string{pest.ID, pest.Name, truncate(pest.Description, 64)})
		}
		p.table([]string{"ID", "NAME", "DESCRIPTION"}, rows)
		return nil

	case "add":
		pest := models.Pest{
			Name:        req.Arg("name"),
			Description: req.Arg("description"),
			ImageURL:    req.Arg("image_url"),
		}
		var err error
		if pest.Name == "" {
			if !p.Interactive {
				return fmt.Errorf("a pest name is required (use --name flag)")
			}
			if pest.Name, err = p.promptString("Pest name", true); err != nil {
				return err
			}
		}
		if pest.Description == "" && p.Interactive {
			if pest.Description, err = p.promptString("Description", false); err != nil {
				return err
			}
		}
		created, err := p.API.CreatePest(ctx, pest)
		if err != nil {
			return fmt.Errorf("failed to create pest: %w", err)
		}
		fmt.Fprintf(p.Out, "✓ Pest '%s' created (%s)\n", created.Name, created.ID)
		return nil

	case "update":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a pest id is required (use --id flag)")
		}
		pest := models.Pest{
			Name:        req.Arg("name"),
			Description: req.Arg("description"),
			ImageURL:    req.Arg("image_url"),
		}
		updated, err := p.API.UpdatePest(ctx, id, pest)
		if err != nil {
			return fmt.Errorf("failed to update pest: %w", err)
		}
		fmt.Fprintf(p.Out, "✓ Pest '%s' updated\n", updated.Name)
		return nil

	case "delete":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a pest id is required (use --id flag)")
		}
		if p.Interactive && !p.confirm(fmt.Sprintf("Delete pest %s", id)) {
			fmt.Fprintln(p.Out, "Cancelled.")
			return nil
		}
		if err := p.API.DeletePest(ctx, id); err != nil {
			return fmt.Errorf("failed to delete pest: %w", err)
		}
		fmt.Fprintln(p.Out, "✓ Pest deleted")
		return nil

	default:
		return fmt.Errorf("unknown action: %s", req.Arg("action"))
	}
}

// ManagePesticides renders the pesticide reference-data management page.
// Actions: list (default), add, update, delete.
func (p *Pages) ManagePesticides(ctx context.Context, req *router.Request) error {
	switch req.Arg("action") {
	case "", "list":
		pesticides, err := p.API.ListPesticides(ctx)
		if err != nil {
			return fmt.Errorf("failed to load pesticides: %w", err)
		}
		if len(pesticides) == 0 {
			fmt.Fprintln(p.Out, "No pesticides found.")
			return nil
		}
		rows := make([][]string, 0, len(pesticides))
		for _, pesticide := range pesticides {
			rows = append(rows, []string{pesticide.ID, pesticide.Name, pesticide.TargetPest, pesticide.Dosage})
		}
		p.table([]string{"ID", "NAME", "TARGET PEST", "DOSAGE"}, rows)
		return nil

	case "add":
		pesticide := models.Pesticide{
			Name:              req.Arg("name"),
			TargetPest:        req.Arg("target_pest"),
			Dosage:            req.Arg("dosage"),
			SafetyPrecautions: req.Arg("safety"),
		}
		var err error
		if pesticide.Name == "" {
			if !p.Interactive {
				return fmt.Errorf("a pesticide name is required (use --name flag)")
			}
			if pesticide.Name, err = p.promptString("Pesticide name", true); err != nil {
				return err
			}
		}
		if pesticide.TargetPest == "" && p.Interactive {
			if pesticide.TargetPest, err = p.promptString("Target pest", false); err != nil {
				return err
			}
		}
		if pesticide.Dosage == "" && p.Interactive {
			if pesticide.Dosage, err = p.promptString("Dosage", false); err != nil {
				return err
			}
		}
		created, err := p.API.CreatePesticide(ctx, pesticide)
		if err != nil {
			return fmt.Errorf("failed to create pesticide: %w", err)
		}
		fmt.Fprintf(p.Out, "✓ Pesticide '%s' created (%s)\n", created.Name, created.ID)
		return nil

	case "update":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a pesticide id is required (use --id flag)")
		}
		pesticide := models.Pesticide{
			Name:              req.Arg("name"),
			TargetPest:        req.Arg("target_pest"),
			Dosage:            req.Arg("dosage"),
			SafetyPrecautions: req.Arg("safety"),
		}
		updated, err := p.API.UpdatePesticide(ctx, id, pesticide)
		if err != nil {
			return fmt.Errorf("failed to update pesticide: %w", err)
		}
		fmt.Fprintf(p.Out, "✓ Pesticide '%s' updated\n", updated.Name)
		return nil

	case "delete":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a pesticide id is required (use --id flag)")
		}
		if p.Interactive && !p.confirm(fmt.Sprintf("Delete pesticide %s", id)) {
			fmt.Fprintln(p.Out, "Cancelled.")
			return nil
		}
		if err := p.API.DeletePesticide(ctx, id); err != nil {
			return fmt.Errorf("failed to delete pesticide: %w", err)
		}
		fmt.Fprintln(p.Out, "✓ Pesticide deleted")
		return nil

	default:
		return fmt.Errorf("unknown action: %s", req.Arg("action"))
	}
}

// ManageFeedback renders the feedback moderation page.
// Actions: list (default), delete.
func (p *Pages) ManageFeedback(ctx context.Context, req *router.Request) error {
	switch req.Arg("action") {
	case "", "list":
		feedback, err := p.API.ListFeedback(ctx)
		if err != nil {
			return fmt.Errorf("failed to load feedback: %w", err)
		}
		if len(feedback) == 0 {
			fmt.Fprintln(p.Out, "No feedback found.")
			return nil
		}
		rows := make([][]string, 0, len(feedback))
		for _, fb := range feedback {
			rating := ""
			if fb.Rating > 0 {
				rating = fmt.Sprintf("%d/5", fb.Rating)
			}
			rows = append(rows, []string{fb.ID, fb.Email, rating, truncate(fb.Message, 56)})
		}
		p.table([]string{"ID", "FROM", "RATING", "MESSAGE"}, rows)
		return nil

	case "delete":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a feedback id is required (use --id flag)")
		}
		if p.Interactive && !p.confirm(fmt.Sprintf("Delete feedback %s", id)) {
			fmt.Fprintln(p.Out, "Cancelled.")
			return nil
		}
		if err := p.API.DeleteFeedback(ctx, id); err != nil {
			return fmt.Errorf("failed to delete feedback: %w", err)
		}
		fmt.Fprintln(p.Out, "✓ Feedback deleted")
		return nil

	default:
		return fmt.Errorf("unknown action: %s", req.Arg("action"))
	}
}

// UserManagement renders the user administration page.
// Actions: list (default), delete.
func (p *Pages) UserManagement(ctx context.Context, req *router.Request) error {
	switch req.Arg("action") {
	case "", "list":
		users, err := p.API.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		rows := make([][]string, 0, len(users))
		for _, user := range users {
			rows = append(rows, []string{user.ID, user.FullName(), user.Email, string(user.Role)})
		}
		p.table([]string{"ID", "NAME", "EMAIL", "ROLE"}, rows)
		return nil

	case "delete":
		id := req.Arg("id")
		if id == "" {
			return fmt.Errorf("a user id is required (use --id flag)")
		}
		if state := p.Session.State(); state.User != nil && state.User.ID == id {
			return fmt.Errorf("refusing to delete the currently logged-in account")
		}
		if p.Interactive && !p.confirm(fmt.Sprintf("Delete user %s", id)) {
			fmt.Fprintln(p.Out, "Cancelled.")
			return nil
		}
		if err := p.API.DeleteUser(ctx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		fmt.Fprintln(p.Out, "✓ User deleted")
		return nil

	default:
		return fmt.Errorf("unknown action: %s", req.Arg("action"))
	}
}
