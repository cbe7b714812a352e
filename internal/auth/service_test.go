package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartpest-dev/smartpest/internal/api"
	"github.com/smartpest-dev/smartpest/internal/models"
)

type noCreds struct{}

func (noCreds) Credential() (string, bool) { return "", false }

func newTestService(handler http.HandlerFunc) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := api.New(server.URL, noCreds{}, zerolog.Nop())
	return NewService(client), server
}

func TestLogin_Success(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "tok123",
			User:  models.UserProfile{ID: "u1", Email: "a@b.c", Role: models.RoleAdmin},
		})
	})
	defer server.Close()

	profile, credential, err := svc.Login(context.Background(), LoginInput{
		Email:    "a@b.c",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok123", credential)
	assert.Equal(t, models.RoleAdmin, profile.Role)
}

func TestLogin_InvalidEmailRejectedBeforeNetwork(t *testing.T) {
	called := false
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer server.Close()

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "not-an-email", Password: "pw"})

	var valErr *api.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "email", valErr.Field)
	assert.False(t, called)
}

func TestLogin_MissingPasswordRejected(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c"})

	var valErr *api.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "password", valErr.Field)
}

func TestLogin_UnexpectedRoleRejected(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "tok123",
			User:  models.UserProfile{ID: "u1", Email: "a@b.c", Role: "superuser"},
		})
	})
	defer server.Close()

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "pw123456"})

	var authErr *api.AuthError
	assert.True(t, errors.As(err, &authErr))
}

func TestRegister_WithoutCredentialDoesNotAuthenticate(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.RegisterResponse{
			User: models.UserProfile{ID: "u2", Email: "new@b.c", Role: models.RoleUser},
		})
	})
	defer server.Close()

	outcome, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Okoye",
		Email:     "new@b.c",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.False(t, outcome.Authenticated)
	assert.Empty(t, outcome.Credential)
	assert.Equal(t, "u2", outcome.Profile.ID)
}

func TestRegister_WithCredentialAuthenticates(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.RegisterResponse{
			Token: "tok456",
			User:  models.UserProfile{ID: "u2", Email: "new@b.c", Role: models.RoleUser},
		})
	})
	defer server.Close()

	outcome, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Okoye",
		Email:     "new@b.c",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Authenticated)
	assert.Equal(t, "tok456", outcome.Credential)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Okoye",
		Email:     "new@b.c",
		Password:  "short",
	})

	var valErr *api.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "password", valErr.Field)
}

func TestRequestPasswordReset_ValidatesEmail(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	err := svc.RequestPasswordReset(context.Background(), "nope")

	var valErr *api.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "email", snakeCase("Email"))
	assert.Equal(t, "first_name", snakeCase("FirstName"))
	assert.Equal(t, "password", snakeCase("Password"))
}
