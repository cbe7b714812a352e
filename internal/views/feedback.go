package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smartpest-dev/smartpest/internal/models"
	"github.com/smartpest-dev/smartpest/internal/router"
)

// Feedback renders the feedback page: a message and optional rating
func (p *Pages) Feedback(ctx context.Context, req *router.Request) error {
	message := req.Arg("message")
	if message == "" {
		if !p.Interactive {
			return fmt.Errorf("a message is required (use --message flag)")
		}
		var err error
		message, err = p.promptString("Your feedback", true)
		if err != nil {
			return err
		}
	}

	rating := 0
	if raw := req.Arg("rating"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 5 {
			return fmt.Errorf("rating must be a number from 1 to 5")
		}
		rating = parsed
	}

	fb := models.Feedback{Message: message, Rating: rating}
	if state := p.Session.State(); state.User != nil {
		fb.UserID = state.User.ID
		fb.Email = state.User.Email
	}

	if _, err := p.API.CreateFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to submit feedback: %w", err)
	}

	fmt.Fprintln(p.Out, "✓ Thanks for your feedback!")
	return nil
}

// PestReports renders the saved detection reports page
func (p *Pages) PestReports(ctx context.Context, req *router.Request) error {
	reports, err := p.API.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Fprintln(p.Out, "No reports found.")
		fmt.Fprintln(p.Out, "\nSave one with: smartpest detect <image> --save")
		return nil
	}

	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		timestamp := ""
		if !report.Timestamp.IsZero() {
			timestamp = report.Timestamp.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			report.PestName,
			fmt.Sprintf("%.1f%%", report.Confidence*100),
			timestamp,
			truncate(report.Description, 48),
		})
	}
	p.table([]string{"PEST", "CONFIDENCE", "DETECTED AT", "DESCRIPTION"}, rows)
	return nil
}
