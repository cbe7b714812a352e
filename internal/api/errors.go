package api

import "fmt"

// NetworkError indicates that no response reached the client at all
// (offline, DNS failure, timeout). It wraps the underlying transport error.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError indicates the backend explicitly rejected the credentials or
// session. Reason carries the server-supplied message where available.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// ValidationError indicates the backend (or a pre-flight check) rejected
// input data, optionally tied to a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// APIError is a non-2xx response from any endpoint outside the auth flow.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}
