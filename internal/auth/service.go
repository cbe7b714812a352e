package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/smartpest-dev/smartpest/internal/api"
	"github.com/smartpest-dev/smartpest/internal/models"
)

// Service performs the two network operations that establish identity and
// normalizes their outcomes. It never mutates session state itself; callers
// feed its results into the session context.
type Service struct {
	client   *api.Client
	validate *validator.Validate
}

// LoginInput is the credential pair for a login attempt
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterInput is the profile data for a new account
type RegisterInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Phone     string `validate:"omitempty,min=7,max=20"`
	Password  string `validate:"required,min=8"`
}

// RegisterOutcome is the result of a registration attempt. Authenticated is
// only true when the backend included a credential in its response;
// registration does not log the user in otherwise.
type RegisterOutcome struct {
	Profile       models.UserProfile
	Credential    string
	Authenticated bool
}

// NewService creates an auth service over the API client
func NewService(client *api.Client) *Service {
	return &Service{
		client:   client,
		validate: validator.New(),
	}
}

// Login authenticates against the backend and returns the profile and
// credential. Failures are terminal: no retries, and the caller's existing
// session, if any, is left untouched.
func (s *Service) Login(ctx context.Context, input LoginInput) (models.UserProfile, string, error) {
	if err := s.checkInput(input); err != nil {
		return models.UserProfile{}, "", err
	}

	resp, err := s.client.Login(ctx, input.Email, input.Password)
	if err != nil {
		return models.UserProfile{}, "", err
	}

	if resp.Token == "" || !resp.User.Role.Valid() {
		return models.UserProfile{}, "", &api.AuthError{Reason: "login failed"}
	}

	return resp.User, resp.Token, nil
}

// Register creates a new account. The outcome carries a credential only when
// the backend issued one as part of registration.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*RegisterOutcome, error) {
	if err := s.checkInput(input); err != nil {
		return nil, err
	}

	resp, err := s.client.Register(ctx, api.RegisterRequest{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
	})
	if err != nil {
		return nil, err
	}

	outcome := &RegisterOutcome{Profile: resp.User}
	if resp.Token != "" && resp.User.Role.Valid() {
		outcome.Credential = resp.Token
		outcome.Authenticated = true
	}
	return outcome, nil
}

// RequestPasswordReset asks the backend to start a password reset
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return &api.ValidationError{Field: "email", Message: "a valid email address is required"}
	}
	return s.client.ForgotPassword(ctx, email)
}

// checkInput runs struct validation and converts the first failure into the
// same ValidationError shape the backend produces.
func (s *Service) checkInput(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &api.ValidationError{
			Field:   snakeCase(fe.Field()),
			Message: messageFor(fe),
		}
	}
	return fmt.Errorf("invalid input: %w", err)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "invalid value"
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
