package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/smartpest-dev/smartpest/internal/models"
)

// CredentialSource supplies the current bearer credential, if any. The session
// context implements it; the client itself never reads persisted state.
type CredentialSource interface {
	Credential() (string, bool)
}

// Client represents an HTTP client for the SmartPest API
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	log        zerolog.Logger
}

// New creates a new API client
func New(baseURL string, creds CredentialSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds: creds,
		log:   log,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// errorBody is the flexible shape of backend error payloads. Field errors
// arrive as {"email": ["already taken"]}; general errors as message/detail/error.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
}

func decodeErrorMessage(body []byte) (message, field string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Message != "":
			return eb.Message, ""
		case eb.Detail != "":
			return eb.Detail, ""
		case eb.Error != "":
			return eb.Error, ""
		}
	}

	// Field-error map, one message per field
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil {
		for name, msgs := range fields {
			if len(msgs) > 0 {
				return msgs[0], name
			}
		}
	}

	return "", ""
}

// do performs a JSON request against the API. A bearer credential is attached
// whenever the credential source has one. out may be nil for ack-only calls.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		message, _ := decodeErrorMessage(raw)
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// prepare attaches the credential and a request ID, and logs the call.
func (c *Client) prepare(req *http.Request) {
	requestID := ulid.Make().String()
	req.Header.Set("X-Request-ID", requestID)

	if token, ok := c.creds.Credential(); ok {
		req.Header.Set("Authorization", fmt.Sprintf("Token %s", token))
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", requestID).
		Msg("API request")
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Login authenticates the user and returns the credential and profile.
// Any non-success status is reported as an AuthError; the prior session,
// if one exists, is not touched here.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	reqBody := LoginRequest{Email: email, Password: password}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login/", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		message, _ := decodeErrorMessage(raw)
		if message == "" {
			message = "login failed"
		}
		return nil, &AuthError{Reason: message}
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &loginResp, nil
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// RegisterResponse represents the registration response. Token is only set
// when the backend logs the new account in as part of registration.
type RegisterResponse struct {
	Token string             `json:"token,omitempty"`
	User  models.UserProfile `json:"user"`
}

// Register creates a new account. Backend field rejections (e.g. a duplicate
// email) surface as ValidationError; other rejections as AuthError.
func (c *Client) Register(ctx context.Context, reg RegisterRequest) (*RegisterResponse, error) {
	jsonData, err := json.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/register/", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		message, field := decodeErrorMessage(raw)
		if resp.StatusCode == http.StatusBadRequest {
			if message == "" {
				message = "registration rejected"
			}
			return nil, &ValidationError{Field: field, Message: message}
		}
		if message == "" {
			message = "registration failed"
		}
		return nil, &AuthError{Reason: message}
	}

	var regResp RegisterResponse
	if err := json.NewDecoder(resp.Body).Decode(&regResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &regResp, nil
}

// ForgotPassword requests a password reset for the given email
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/forgot-password/", map[string]string{"email": email}, nil)
}

// DetectPest uploads an image for pest identification
func (c *Client) DetectPest(ctx context.Context, imagePath string) (*models.Prediction, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict/", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		message, _ := decodeErrorMessage(raw)
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}

	var prediction models.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &prediction, nil
}

// PestInfo fetches detailed information about a pest by name
func (c *Client) PestInfo(ctx context.Context, pestName string) (*models.PestInfo, error) {
	var info models.PestInfo
	if err := c.do(ctx, http.MethodGet, "/pest-info/"+pestName+"/", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListReports returns all saved detection reports
func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := c.do(ctx, http.MethodGet, "/reports/", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// SaveReport stores a detection result as a report
func (c *Client) SaveReport(ctx context.Context, report models.Report) (*models.Report, error) {
	var saved models.Report
	if err := c.do(ctx, http.MethodPost, "/reports/", report, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListPests returns the pest reference data
func (c *Client) ListPests(ctx context.Context) ([]models.Pest, error) {
	var pests []models.Pest
	if err := c.do(ctx, http.MethodGet, "/pests/", nil, &pests); err != nil {
		return nil, err
	}
	return pests, nil
}

// CreatePest adds a pest reference entry
func (c *Client) CreatePest(ctx context.Context, pest models.Pest) (*models.Pest, error) {
	var created models.Pest
	if err := c.do(ctx, http.MethodPost, "/pests/", pest, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePest updates a pest reference entry
func (c *Client) UpdatePest(ctx context.Context, id string, pest models.Pest) (*models.Pest, error) {
	var updated models.Pest
	if err := c.do(ctx, http.MethodPatch, "/pests/"+id+"/", pest, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePest removes a pest reference entry
func (c *Client) DeletePest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pests/"+id+"/", nil, nil)
}

// ListPesticides returns the pesticide reference data
func (c *Client) ListPesticides(ctx context.Context) ([]models.Pesticide, error) {
	var pesticides []models.Pesticide
	if err := c.do(ctx, http.MethodGet, "/pesticides/", nil, &pesticides); err != nil {
		return nil, err
	}
	return pesticides, nil
}

// CreatePesticide adds a pesticide reference entry
func (c *Client) CreatePesticide(ctx context.Context, pesticide models.Pesticide) (*models.Pesticide, error) {
	var created models.Pesticide
	if err := c.do(ctx, http.MethodPost, "/pesticides/", pesticide, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePesticide updates a pesticide reference entry
func (c *Client) UpdatePesticide(ctx context.Context, id string, pesticide models.Pesticide) (*models.Pesticide, error) {
	var updated models.Pesticide
	if err := c.do(ctx, http.MethodPatch, "/pesticides/"+id+"/", pesticide, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePesticide removes a pesticide reference entry
func (c *Client) DeletePesticide(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pesticides/"+id+"/", nil, nil)
}

// ListFeedback returns all submitted feedback
func (c *Client) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := c.do(ctx, http.MethodGet, "/feedback/", nil, &feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// CreateFeedback submits a feedback entry
func (c *Client) CreateFeedback(ctx context.Context, fb models.Feedback) (*models.Feedback, error) {
	var created models.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback/", fb, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteFeedback removes a feedback entry
func (c *Client) DeleteFeedback(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/feedback/"+id+"/", nil, nil)
}

// ListUsers returns all user accounts (admin only)
func (c *Client) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user account (admin only)
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id+"/", nil, nil)
}
