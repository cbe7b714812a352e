package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/smartpest-dev/smartpest/internal/api"
	"github.com/smartpest-dev/smartpest/internal/auth"
	cliconfig "github.com/smartpest-dev/smartpest/internal/cli/config"
	"github.com/smartpest-dev/smartpest/internal/config"
	"github.com/smartpest-dev/smartpest/internal/models"
	"github.com/smartpest-dev/smartpest/internal/router"
	"github.com/smartpest-dev/smartpest/internal/session"
	"github.com/smartpest-dev/smartpest/internal/views"
)

// App wires the session context, API client, router, and views together.
// Commands dispatch routes through it; they never touch the store or the
// client directly.
type App struct {
	sess   *session.Context
	router *router.Router
	log    zerolog.Logger
}

// newApp builds the application from configuration. The session is hydrated
// from the store before anything else runs.
func newApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	// Project config file, when present, overrides the env default
	baseURL := cfg.API.BaseURL
	if projectCfg, found, err := cliconfig.LoadFromCurrentDir(); err != nil {
		return nil, err
	} else if found && projectCfg.APIBaseURL != "" {
		baseURL = projectCfg.APIBaseURL
	}

	var kv session.Store
	switch cfg.Session.Backend {
	case "keyring":
		kv = session.NewKeyringStore()
	case "file", "":
		fileStore, err := session.NewFileStore()
		if err != nil {
			return nil, err
		}
		kv = fileStore
	default:
		return nil, fmt.Errorf("unknown session backend: %s", cfg.Session.Backend)
	}

	sess := session.NewContext(session.NewSessionStore(kv), session.DefaultLandings(), log)
	sess.Hydrate()

	client := api.New(baseURL, sess, log)
	authSvc := auth.NewService(client)

	rt := router.New(sess, log)
	pages := &views.Pages{
		API:         client,
		Auth:        authSvc,
		Session:     sess,
		Router:      rt,
		Out:         os.Stdout,
		Log:         log,
		Interactive: term.IsTerminal(int(syscall.Stdin)),
	}
	registerRoutes(rt, pages)

	// Session transitions navigate through the router from here on
	sess.SetNavigator(rt)

	return &App{sess: sess, router: rt, log: log}, nil
}

// registerRoutes declares the application's route table: every page, its
// authentication requirement, and its role requirement.
func registerRoutes(rt *router.Router, pages *views.Pages) {
	routes := []router.Route{
		{Path: router.PathHome, Handler: pages.Home},
		{Path: router.PathLogin, Handler: pages.Login},
		{Path: router.PathSignup, Handler: pages.Signup},
		{Path: router.PathForgotPassword, Handler: pages.ForgotPassword},

		{Path: router.PathPestDetect, RequiresAuth: true, Handler: pages.PestDetect},
		{Path: router.PathPestResult, RequiresAuth: true, Handler: pages.PestResult},
		{Path: router.PathDescription, RequiresAuth: true, Handler: pages.Description},
		{Path: router.PathFeedback, RequiresAuth: true, Handler: pages.Feedback},
		{Path: router.PathPestReports, RequiresAuth: true, Handler: pages.PestReports},

		{Path: router.PathAdmin, RequiresAuth: true, RequiresRole: models.RoleAdmin, Handler: pages.AdminDashboard},
		{Path: router.PathManagePests, RequiresAuth: true, RequiresRole: models.RoleAdmin, Handler: pages.ManagePests},
		{Path: router.PathManagePesticides, RequiresAuth: true, RequiresRole: models.RoleAdmin, Handler: pages.ManagePesticides},
		{Path: router.PathManageFeedback, RequiresAuth: true, RequiresRole: models.RoleAdmin, Handler: pages.ManageFeedback},
		{Path: router.PathUserManagement, RequiresAuth: true, RequiresRole: models.RoleAdmin, Handler: pages.UserManagement},
	}
	for _, route := range routes {
		rt.Handle(route)
	}
}

// Dispatch navigates to a route with view parameters
func (a *App) Dispatch(ctx context.Context, path string, args map[string]string) error {
	return a.router.Dispatch(ctx, path, args)
}

// Session returns the session context
func (a *App) Session() *session.Context {
	return a.sess
}
