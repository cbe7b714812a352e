package views

import (
	"context"
	"fmt"

	"github.com/smartpest-dev/smartpest/internal/router"
)

// Description renders the reference-data page. With a pest name it shows the
// detail for that pest; with show=pesticides it lists the pesticide catalog;
// otherwise it lists known pests.
func (p *Pages) Description(ctx context.Context, req *router.Request) error {
	if name := req.Arg("pest"); name != "" {
		return p.pestDetail(ctx, name)
	}

	if req.Arg("show") == "pesticides" {
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
			rows = append(rows, []string{pesticide.Name, pesticide.TargetPest, pesticide.Dosage, pesticide.SafetyPrecautions})
		}
		p.table([]string{"NAME", "TARGET PEST", "DOSAGE", "SAFETY"}, rows)
		return nil
	}

	pests, err := p.API.ListPests(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pests: %w", err)
	}
	if len(pests) == 0 {
		fmt.Fprintln(p.Out, "No pests found.")
		return nil
	}

	if p.Interactive {
		labels := make([]string, len(pests))
		for i, pest := range pests {
			labels[i] = pest.Name
		}
		index, err := p.selectOption("Select a pest", labels)
		if err != nil {
			return nil
		}
		return p.pestDetail(ctx, pests[index].Name)
	}

	rows := make([][]string, 0, len(pests))
	for _, pest := range pests {
		rows = append(rows, []string{pest.Name, truncate(pest.Description, 72)})
	}
	p.table([]string{"NAME", "DESCRIPTION"}, rows)
	return nil
}

func (p *Pages) pestDetail(ctx context.Context, name string) error {
	info, err := p.API.PestInfo(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load pest info: %w", err)
	}

	fmt.Fprintf(p.Out, "%s\n\n%s\n", info.PestName, info.Description)
	if len(info.Pesticides) == 0 {
		return nil
	}

	fmt.Fprintln(p.Out, "\nRecommended pesticides:")
	rows := make([][]string, 0, len(info.Pesticides))
	for _, pesticide := range info.Pesticides {
		rows = append(rows, []string{pesticide.Name, pesticide.Dosage, pesticide.SafetyPrecautions})
	}
	p.table([]string{"NAME", "DOSAGE", "SAFETY"}, rows)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
