package router

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/smartpest-dev/smartpest/internal/models"
	"github.com/smartpest-dev/smartpest/internal/session"
)

// Route paths, mirroring the application's page map
const (
	PathHome             = "/"
	PathLogin            = "/login"
	PathSignup           = "/signup"
	PathForgotPassword   = "/forgot-password"
	PathPestDetect       = "/pest-detect"
	PathPestResult       = "/pest-result"
	PathDescription      = "/description"
	PathFeedback         = "/feedback"
	PathPestReports      = "/pest-reports"
	PathAdmin            = "/admin"
	PathManagePests      = "/manage-pests"
	PathManagePesticides = "/manage-pesticides"
	PathManageFeedback   = "/manage-feedback"
	PathUserManagement   = "/user-management"
)

// Request carries a navigation into a view handler
type Request struct {
	Path string
	// From is the originally requested path when the guard redirected here;
	// the login view uses it to return the user after authenticating.
	From string
	// Args are view parameters supplied by the invoking command
	Args map[string]string
}

// Arg returns a view parameter, or empty string when absent
func (r *Request) Arg(name string) string {
	if r.Args == nil {
		return ""
	}
	return r.Args[name]
}

// ViewFunc renders a single page
type ViewFunc func(ctx context.Context, req *Request) error

// Route declares the access policy and handler for one path. An empty
// RequiresRole means any authenticated user may enter.
type Route struct {
	Path         string
	RequiresAuth bool
	RequiresRole models.Role
	Handler      ViewFunc
}

// Router gates rendering of requested views against the current session
// state. The access decision is evaluated fresh on every navigation.
type Router struct {
	routes  map[string]Route
	session *session.Context
	log     zerolog.Logger
}

// New creates a router over the session context
func New(sess *session.Context, log zerolog.Logger) *Router {
	return &Router{
		routes:  make(map[string]Route),
		session: sess,
		log:     log,
	}
}

// Handle registers a route
func (r *Router) Handle(route Route) {
	r.routes[route.Path] = route
}

// Navigate implements session.Navigator: a fire-and-forget dispatch used for
// redirect side effects. Handler failures are logged, not propagated.
func (r *Router) Navigate(path string) {
	if err := r.Dispatch(context.Background(), path, nil); err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("navigation failed")
	}
}

// Dispatch resolves a path against the route table, applies the access
// policy, and either runs the view or redirects:
//
//  1. auth required and not logged in: redirect to the login view, carrying
//     the requested path so login can return the user there
//  2. role required and mismatched: redirect to the default route (the user
//     is authenticated, just unauthorized)
//  3. otherwise: run the view
func (r *Router) Dispatch(ctx context.Context, path string, args map[string]string) error {
	route, ok := r.routes[path]
	if !ok {
		return fmt.Errorf("no such page: %s", path)
	}

	state := r.session.State()

	if route.RequiresAuth && !state.IsLoggedIn {
		r.log.Debug().Str("path", path).Msg("unauthenticated, redirecting to login")
		return r.redirect(ctx, PathLogin, path)
	}

	if route.RequiresRole != "" && (state.User == nil || state.User.Role != route.RequiresRole) {
		r.log.Debug().Str("path", path).Msg("role mismatch, redirecting to home")
		return r.redirect(ctx, PathHome, "")
	}

	return route.Handler(ctx, &Request{Path: path, Args: args})
}

func (r *Router) redirect(ctx context.Context, to, from string) error {
	route, ok := r.routes[to]
	if !ok {
		return fmt.Errorf("no such page: %s", to)
	}
	return route.Handler(ctx, &Request{Path: to, From: from})
}
