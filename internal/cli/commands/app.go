package commands

import (
	"context"

	"github.com/smartpest-dev/smartpest/internal/session"
)

// App is the slice of the application that commands need: route dispatch and
// session access. The concrete app lives in the parent package; tests can
// substitute a recorder.
type App interface {
	Dispatch(ctx context.Context, path string, args map[string]string) error
	Session() *session.Context
}
