package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/smartpest-dev/smartpest/internal/models"
	"github.com/smartpest-dev/smartpest/internal/router"
)

// PestDetect renders the detection page: upload an image, then navigate to
// the result page with the prediction. The app does no image processing
// itself; this is a single call to the model-serving endpoint.
func (p *Pages) PestDetect(ctx context.Context, req *router.Request) error {
	imagePath := req.Arg("image")
	if imagePath == "" {
		if !p.Interactive {
			return fmt.Errorf("an image file is required: smartpest detect <image>")
		}
		var err error
		imagePath, err = p.promptString("Image file", true)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(p.Out, "Analyzing %s...\n", imagePath)

	prediction, err := p.API.DetectPest(ctx, imagePath)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	return p.Router.Dispatch(ctx, router.PathPestResult, map[string]string{
		"class":      prediction.Class,
		"confidence": strconv.FormatFloat(prediction.Confidence, 'f', -1, 64),
		"save":       req.Arg("save"),
	})
}

// PestResult renders a detection result: the predicted class and confidence,
// the reference description for the pest, and an optional saved report.
func (p *Pages) PestResult(ctx context.Context, req *router.Request) error {
	class := req.Arg("class")
	if class == "" {
		fmt.Fprintln(p.Out, "No detection result to show. Run 'smartpest detect <image>' first.")
		return nil
	}
	confidence, err := strconv.ParseFloat(req.Arg("confidence"), 64)
	if err != nil {
		confidence = 0
	}

	fmt.Fprintln(p.Out, "Detection result:")
	p.table(
		[]string{"PEST", "CONFIDENCE"},
		[][]string{{class, fmt.Sprintf("%.1f%%", confidence*100)}},
	)

	description := ""
	info, err := p.API.PestInfo(ctx, class)
	if err != nil {
		// Reference data is optional context for the result page
		p.Log.Warn().Err(err).Str("pest", class).Msg("pest info unavailable")
	} else {
		description = info.Description
		fmt.Fprintf(p.Out, "\n%s\n", info.Description)
		if len(info.Pesticides) > 0 {
			fmt.Fprintln(p.Out, "\nRecommended pesticides:")
			rows := make([][]string, 0, len(info.Pesticides))
			for _, pesticide := range info.Pesticides {
				rows = append(rows, []string{pesticide.Name, pesticide.Dosage, pesticide.SafetyPrecautions})
			}
			p.table([]string{"NAME", "DOSAGE", "SAFETY"}, rows)
		}
	}

	save := req.Arg("save") == "true"
	if !save && p.Interactive {
		save = p.confirm("Save this detection as a report")
	}
	if !save {
		return nil
	}

	state := p.Session.State()
	report := models.Report{
		PestName:    class,
		Confidence:  confidence,
		Description: description,
	}
	if state.User != nil {
		report.UserID = state.User.ID
	}

	saved, err := p.API.SaveReport(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Fprintf(p.Out, "✓ Report saved (%s)\n", saved.ID)
	return nil
}
