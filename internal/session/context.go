package session

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/rs/zerolog"

	"github.com/smartpest-dev/smartpest/internal/models"
)

const topicStateChanged = "session:state-changed"

// State is the derived, in-memory authentication status. IsLoggedIn is true
// iff a credential and a valid profile are both present.
type State struct {
	IsLoggedIn bool
	User       *models.UserProfile
}

// Navigator performs view navigation on behalf of the session context.
// The router implements it; tests substitute a recorder.
type Navigator interface {
	Navigate(path string)
}

// Landings are the navigation targets for session transitions
type Landings struct {
	Admin   string // after admin login
	Default string // after non-admin login
	Login   string // after logout
}

// DefaultLandings matches the application's route table
func DefaultLandings() Landings {
	return Landings{Admin: "/admin", Default: "/", Login: "/login"}
}

// Context is the single authoritative holder of session state. It owns the
// session store: every other component reads state through it and never
// touches the store directly. Views observe changes through Subscribe.
type Context struct {
	store    *SessionStore
	nav      Navigator
	bus      evbus.Bus
	landings Landings
	log      zerolog.Logger

	mu         sync.Mutex
	state      State
	credential string
	gen        uint64
}

// NewContext creates a session context over the given store. Call Hydrate
// before first use and SetNavigator once the router exists.
func NewContext(store *SessionStore, landings Landings, log zerolog.Logger) *Context {
	return &Context{
		store:    store,
		bus:      evbus.New(),
		landings: landings,
		log:      log,
	}
}

// SetNavigator wires the navigation side effects of login/logout
func (c *Context) SetNavigator(nav Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = nav
}

// Hydrate initializes state from the session store. A corrupt store is
// cleared and results in a logged-out state; the failure is not surfaced.
func (c *Context) Hydrate() {
	credential, profile, err := c.store.Read()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Msg("discarding unreadable session")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.log.Error().Err(clearErr).Msg("failed to clear session store")
		}
		c.state = State{}
		c.credential = ""
		return
	}

	if profile == nil {
		c.state = State{}
		c.credential = ""
		return
	}

	c.state = State{IsLoggedIn: true, User: profile}
	c.credential = credential
}

// State returns the current session state
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Credential returns the current bearer credential, implementing the API
// client's credential source.
func (c *Context) Credential() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsLoggedIn {
		return "", false
	}
	return c.credential, true
}

// Generation returns the current session generation. Callers starting a login
// attempt capture it and pass it to CompleteLogin so that a resolution racing
// a logout is discarded.
func (c *Context) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Login establishes a session: write-through to the store, state transition,
// then role-based landing navigation. The store write and state change happen
// before any subscriber runs, so observers never see them out of step.
func (c *Context) Login(profile models.UserProfile, credential string) error {
	if err := c.store.Write(credential, profile); err != nil {
		return err
	}

	c.mu.Lock()
	c.state = State{IsLoggedIn: true, User: &profile}
	c.credential = credential
	c.gen++
	state := c.state
	nav := c.nav
	c.mu.Unlock()

	c.log.Info().Str("user_id", profile.ID).Str("role", string(profile.Role)).Msg("logged in")
	c.bus.Publish(topicStateChanged, state)

	if nav != nil {
		if profile.Role == models.RoleAdmin {
			nav.Navigate(c.landings.Admin)
		} else {
			nav.Navigate(c.landings.Default)
		}
	}
	return nil
}

// CompleteLogin applies a login only if no other transition happened since
// gen was captured. It reports whether the login was applied.
func (c *Context) CompleteLogin(gen uint64, profile models.UserProfile, credential string) (bool, error) {
	c.mu.Lock()
	current := c.gen
	c.mu.Unlock()

	if gen != current {
		c.log.Debug().Msg("discarding stale login resolution")
		return false, nil
	}
	if err := c.Login(profile, credential); err != nil {
		return false, err
	}
	return true, nil
}

// Logout clears the session. Safe to call when already logged out.
func (c *Context) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear session store")
	}

	c.mu.Lock()
	c.state = State{}
	c.credential = ""
	c.gen++
	state := c.state
	nav := c.nav
	c.mu.Unlock()

	c.bus.Publish(topicStateChanged, state)

	if nav != nil {
		nav.Navigate(c.landings.Login)
	}
}

// Subscribe registers a handler invoked on every state change
func (c *Context) Subscribe(fn func(State)) error {
	return c.bus.Subscribe(topicStateChanged, fn)
}

// Unsubscribe removes a previously registered handler
func (c *Context) Unsubscribe(fn func(State)) error {
	return c.bus.Unsubscribe(topicStateChanged, fn)
}
