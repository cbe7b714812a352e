package views

import (
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/smartpest-dev/smartpest/internal/api"
	"github.com/smartpest-dev/smartpest/internal/auth"
	"github.com/smartpest-dev/smartpest/internal/router"
	"github.com/smartpest-dev/smartpest/internal/session"
)

// Pages holds the shared dependencies of every view. Views read session
// state only through the session context and reach the backend only through
// the API client.
type Pages struct {
	API     *api.Client
	Auth    *auth.Service
	Session *session.Context
	Router  *router.Router
	Out     io.Writer
	Log     zerolog.Logger

	// Interactive enables prompting; false when stdin is not a terminal
	Interactive bool
}

// table renders rows in the aligned style used across the app
func (p *Pages) table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(p.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	underlines := make([]string, len(headers))
	for i, h := range headers {
		underlines[i] = strings.Repeat("─", len(h))
	}
	fmt.Fprintln(w, strings.Join(underlines, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// promptString asks for a single line of input
func (p *Pages) promptString(label string, required bool) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if required && strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", strings.ToLower(label))
			}
			return nil
		},
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(value), nil
}

// promptPassword reads a password without echoing it
func (p *Pages) promptPassword(label string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(p.Out)
	return string(bytePassword), nil
}

// confirm asks a yes/no question, defaulting to no
func (p *Pages) confirm(label string) bool {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

// selectOption shows an interactive picker and returns the chosen index
func (p *Pages) selectOption(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}
	index, _, err := prompt.Run()
	if err != nil {
		return -1, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}
