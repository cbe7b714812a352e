package views

import (
	"context"
	"fmt"
	"os"

	"github.com/smartpest-dev/smartpest/internal/auth"
	"github.com/smartpest-dev/smartpest/internal/router"
)

// Login renders the login page: collect credentials, authenticate, establish
// the session. The generation captured before the network call guards against
// a logout racing a slow login response.
func (p *Pages) Login(ctx context.Context, req *router.Request) error {
	email := req.Arg("email")
	if email == "" {
		email = os.Getenv("SMARTPEST_EMAIL")
	}
	password := req.Arg("password")
	if password == "" {
		password = os.Getenv("SMARTPEST_PASSWORD")
	}

	if email == "" {
		if !p.Interactive {
			fmt.Fprintln(p.Out, "You are not logged in. Run 'smartpest login --email <email>' to sign in.")
			return nil
		}
		var err error
		email, err = p.promptString("Email", true)
		if err != nil {
			return err
		}
	}

	if password == "" {
		if !p.Interactive {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or SMARTPEST_PASSWORD env var)")
		}
		var err error
		password, err = p.promptPassword("Password")
		if err != nil {
			return err
		}
	}

	gen := p.Session.Generation()

	profile, credential, err := p.Auth.Login(ctx, auth.LoginInput{Email: email, Password: password})
	if err != nil {
		// The existing session, if any, stays as it was
		return fmt.Errorf("login failed: %w", err)
	}

	applied, err := p.Session.CompleteLogin(gen, profile, credential)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !applied {
		fmt.Fprintln(p.Out, "Session changed while logging in; please try again.")
		return nil
	}

	fmt.Fprintln(p.Out, "✓ Login successful!")
	fmt.Fprintf(p.Out, "  User: %s (%s)\n", profile.FullName(), profile.Email)
	if profile.IsAdmin() {
		fmt.Fprintln(p.Out, "  Role: Admin")
	}

	// Best-effort return to the page the user originally asked for
	if req.From != "" && req.From != router.PathLogin {
		p.Router.Navigate(req.From)
	}
	return nil
}

// Signup renders the registration page. Registration only establishes a
// session when the backend's response includes a credential.
func (p *Pages) Signup(ctx context.Context, req *router.Request) error {
	input := auth.RegisterInput{
		FirstName: req.Arg("first_name"),
		LastName:  req.Arg("last_name"),
		Email:     req.Arg("email"),
		Phone:     req.Arg("phone"),
		Password:  req.Arg("password"),
	}

	if p.Interactive {
		var err error
		if input.FirstName == "" {
			if input.FirstName, err = p.promptString("First name", true); err != nil {
				return err
			}
		}
		if input.LastName == "" {
			if input.LastName, err = p.promptString("Last name", true); err != nil {
				return err
			}
		}
		if input.Email == "" {
			if input.Email, err = p.promptString("Email", true); err != nil {
				return err
			}
		}
		if input.Phone == "" {
			if input.Phone, err = p.promptString("Phone (optional)", false); err != nil {
				return err
			}
		}
		if input.Password == "" {
			if input.Password, err = p.promptPassword("Password"); err != nil {
				return err
			}
		}
	}

	gen := p.Session.Generation()

	outcome, err := p.Auth.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintf(p.Out, "✓ Account created for %s\n", outcome.Profile.Email)

	if !outcome.Authenticated {
		fmt.Fprintln(p.Out, "Please log in with your new account: smartpest login")
		return nil
	}

	applied, err := p.Session.CompleteLogin(gen, outcome.Profile, outcome.Credential)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if applied {
		fmt.Fprintln(p.Out, "You are now logged in.")
	}
	return nil
}

// ForgotPassword renders the password-reset request page
func (p *Pages) ForgotPassword(ctx context.Context, req *router.Request) error {
	email := req.Arg("email")
	if email == "" {
		if !p.Interactive {
			return fmt.Errorf("email is required (use --email flag)")
		}
		var err error
		email, err = p.promptString("Email", true)
		if err != nil {
			return err
		}
	}

	if err := p.Auth.RequestPasswordReset(ctx, email); err != nil {
		return fmt.Errorf("password reset request failed: %w", err)
	}

	fmt.Fprintln(p.Out, "If an account exists for that address, a reset link has been sent.")
	return nil
}
