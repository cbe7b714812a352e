package commands

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartpest-dev/smartpest/internal/router"
	"github.com/smartpest-dev/smartpest/internal/session"
)

// dispatchRecorder records route dispatches in place of the real app
type dispatchRecorder struct {
	sess  *session.Context
	path  string
	args  map[string]string
	calls int
}

func newDispatchRecorder(t *testing.T) *dispatchRecorder {
	t.Helper()
	sess := session.NewContext(
		session.NewSessionStore(session.NewMemoryStore()),
		session.DefaultLandings(),
		zerolog.Nop(),
	)
	sess.Hydrate()
	return &dispatchRecorder{sess: sess}
}

func (d *dispatchRecorder) Dispatch(ctx context.Context, path string, args map[string]string) error {
	d.path = path
	d.args = args
	d.calls++
	return nil
}

func (d *dispatchRecorder) Session() *session.Context {
	return d.sess
}

func TestLoginCmd_DispatchesLoginRoute(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewLoginCmd(app)

	require.Equal(t, "login", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("email"))
	require.NotNil(t, cmd.Flags().Lookup("password"))

	cmd.SetArgs([]string{"--email", "a@b.c", "--password", "pw"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, router.PathLogin, app.path)
	assert.Equal(t, "a@b.c", app.args["email"])
	assert.Equal(t, "pw", app.args["password"])
}

func TestDetectCmd_RequiresImageArgument(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewDetectCmd(app)
	cmd.SetArgs([]string{})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	assert.Error(t, cmd.Execute())
	assert.Zero(t, app.calls)
}

func TestDetectCmd_PassesImageAndSaveFlag(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewDetectCmd(app)
	cmd.SetArgs([]string{"leaf.jpg", "--save"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, router.PathPestDetect, app.path)
	assert.Equal(t, "leaf.jpg", app.args["image"])
	assert.Equal(t, "true", app.args["save"])
}

func TestPestsCmd_OptionalNameArgument(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewPestsCmd(app)
	cmd.SetArgs([]string{"aphid"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, router.PathDescription, app.path)
	assert.Equal(t, "aphid", app.args["pest"])
}

func TestManagePestsCmd_DefaultsToList(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewManagePestsCmd(app)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, router.PathManagePests, app.path)
	assert.Equal(t, "list", app.args["action"])
}

func TestManagePestsCmd_AddPassesFields(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewManagePestsCmd(app)
	cmd.SetArgs([]string{"add", "--name", "aphid", "--description", "sap-sucker"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, router.PathManagePests, app.path)
	assert.Equal(t, "add", app.args["action"])
	assert.Equal(t, "aphid", app.args["name"])
	assert.Equal(t, "sap-sucker", app.args["description"])
}

func TestUsersCmd_DeleteRequiresIDFlag(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewUsersCmd(app)
	cmd.SetArgs([]string{"delete", "--id", "u1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, router.PathUserManagement, app.path)
	assert.Equal(t, "delete", app.args["action"])
	assert.Equal(t, "u1", app.args["id"])
}

func TestLogoutCmd_ClearsSession(t *testing.T) {
	app := newDispatchRecorder(t)
	cmd := NewLogoutCmd(app)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.False(t, app.sess.State().IsLoggedIn)
}
