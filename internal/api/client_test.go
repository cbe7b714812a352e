package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartpest-dev/smartpest/internal/models"
)

// staticCreds is a fixed credential source for tests
type staticCreds struct {
	token string
}

func (s *staticCreds) Credential() (string, bool) {
	return s.token, s.token != ""
}

func newTestClient(url, token string) *Client {
	return New(url, &staticCreds{token: token}, zerolog.Nop())
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "farmer@example.com", req.Email)
		assert.Equal(t, "secret123", req.Password)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok123",
			User: models.UserProfile{
				ID:    "user-1",
				Email: req.Email,
				Role:  models.RoleUser,
			},
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, "").Login(context.Background(), "farmer@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok123", resp.Token)
	assert.Equal(t, models.RoleUser, resp.User.Role)
}

func TestLogin_RejectedWithServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Login(context.Background(), "a@b.c", "wrong")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid credentials", authErr.Reason)
}

func TestLogin_RejectedWithoutBodyUsesFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Login(context.Background(), "a@b.c", "wrong")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "login failed", authErr.Reason)
}

func TestLogin_TransportFailure(t *testing.T) {
	// A closed server yields no response at all
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := newTestClient(server.URL, "").Login(context.Background(), "a@b.c", "pw")
	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}

func TestRegister_FieldErrorBecomesValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register/", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"email": ["a user with this email already exists"]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Register(context.Background(), RegisterRequest{
		FirstName: "Ada", LastName: "Okoye", Email: "dup@example.com", Password: "secret123",
	})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "email", valErr.Field)
	assert.Equal(t, "a user with this email already exists", valErr.Message)
}

func TestRegister_WithoutCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RegisterResponse{
			User: models.UserProfile{ID: "user-2", Email: "new@example.com", Role: models.RoleUser},
		})
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL, "").Register(context.Background(), RegisterRequest{
		FirstName: "Ada", LastName: "Okoye", Email: "new@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "user-2", resp.User.ID)
}

func TestAuthenticatedRequestCarriesTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Report{})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "tok123").ListReports(context.Background())
	require.NoError(t, err)
}

func TestUnauthenticatedRequestOmitsTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Pest{})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").ListPests(context.Background())
	require.NoError(t, err)
}

func TestDetectPest_MultipartUpload(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(imagePath, []byte("fake image bytes"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/predict/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "leaf.jpg", header.Filename)

		json.NewEncoder(w).Encode(models.Prediction{Class: "aphid", Confidence: 0.93})
	}))
	defer server.Close()

	prediction, err := newTestClient(server.URL, "tok123").DetectPest(context.Background(), imagePath)
	require.NoError(t, err)
	assert.Equal(t, "aphid", prediction.Class)
	assert.InDelta(t, 0.93, prediction.Confidence, 0.0001)
}

func TestDetectPest_MissingFile(t *testing.T) {
	_, err := newTestClient("http://localhost:0", "").DetectPest(context.Background(), "/does/not/exist.jpg")
	assert.Error(t, err)
}

func TestListFailureBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "admin access required"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "tok123").ListUsers(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "admin access required", apiErr.Message)
}

func TestCrudPaths(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "tok123")
	ctx := context.Background()

	_, err := client.CreatePest(ctx, models.Pest{Name: "aphid"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/pests/", gotPath)

	_, err = client.UpdatePesticide(ctx, "p1", models.Pesticide{Dosage: "5ml/L"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/pesticides/p1/", gotPath)

	require.NoError(t, client.DeleteFeedback(ctx, "f1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/feedback/f1/", gotPath)

	require.NoError(t, client.DeleteUser(ctx, "u1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/users/u1/", gotPath)
}
