package views

import (
	"context"
	"fmt"

	"github.com/smartpest-dev/smartpest/internal/router"
)

type destination struct {
	label string
	path  string
}

// Home renders the landing page: session status plus, when interactive, a
// picker over the pages the current user may visit.
func (p *Pages) Home(ctx context.Context, req *router.Request) error {
	state := p.Session.State()

	fmt.Fprintln(p.Out, "SmartPest — pest identification and management")
	if state.IsLoggedIn {
		fmt.Fprintf(p.Out, "Logged in as %s (%s)\n", state.User.FullName(), state.User.Role)
	} else {
		fmt.Fprintln(p.Out, "Not logged in. Use 'smartpest login' or 'smartpest signup'.")
	}

	if !p.Interactive {
		return nil
	}

	destinations := []destination{}
	if state.IsLoggedIn {
		destinations = append(destinations,
			destination{"Detect a pest", router.PathPestDetect},
			destination{"Browse pests and pesticides", router.PathDescription},
			destination{"Detection reports", router.PathPestReports},
			destination{"Send feedback", router.PathFeedback},
		)
		if state.User.IsAdmin() {
			destinations = append(destinations, destination{"Admin dashboard", router.PathAdmin})
		}
	} else {
		destinations = append(destinations,
			destination{"Log in", router.PathLogin},
			destination{"Sign up", router.PathSignup},
		)
	}
	destinations = append(destinations, destination{"Quit", ""})

	labels := make([]string, len(destinations))
	for i, d := range destinations {
		labels[i] = d.label
	}

	index, err := p.selectOption("Where to", labels)
	if err != nil {
		return nil // cancelled selection just leaves the home page
	}
	if destinations[index].path == "" {
		return nil
	}
	return p.Router.Dispatch(ctx, destinations[index].path, nil)
}
