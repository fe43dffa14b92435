package main

import (
	"context"
	"fmt"

	"github.com/ebaadraheem/skillmorph-cli/internal/services"
	"github.com/ebaadraheem/skillmorph-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin exchanges email/password for an access token, persists it, and
// validates the resulting session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	if email == "" || password == "" {
		return fmt.Errorf("%w: --email and --password are required", shared.ErrMissingCredentials)
	}

	r.logger.Info("logging in", "email", email)

	result, err := r.account.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if r.credentials != nil {
		if err := r.credentials.SetToken(result.AccessToken); err != nil {
			r.logger.Warn("failed to persist access token", "error", err)
		}
	}

	// Run the fresh token through the session machine so the identity is
	// resolved and observable before we report success.
	r.session.Authenticate(ctx, result.AccessToken)
	if r.session.State() != services.Authenticated {
		return fmt.Errorf("%w: token accepted but identity lookup failed", shared.ErrAuthFailed)
	}

	user := r.session.CurrentUser()
	r.catalog.SetUser(user.ID)

	return r.writePlain("✓ Logged in as %s (%s)\n", user.DisplayName, user.Role)
}

// AuthLogout clears the stored credentials and asks the backend to drop the
// refresh credential. Local state is cleared even when the request fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.session.Logout(ctx)
	r.catalog.SetUser(r.session.UserID())
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus resumes the persisted session and reports the outcome.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.resume(ctx)

	state := r.session.State()
	if state != services.Authenticated {
		r.writePlain("Session: %s\n", state)
		return r.writePlain("Run 'skillmorph auth login' to authenticate\n")
	}

	user := r.session.CurrentUser()
	r.writePlain("Session: %s\n", state)
	r.writePlain("User: %s\n", user.DisplayName)
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Role: %s\n", user.Role)
	return nil
}

// AuthRegister creates a new account. Registration does not log in; the
// backend expects a follow-up login.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	email := cmd.String("email")
	password := cmd.String("password")

	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: --username, --email and --password are required", shared.ErrMissingArgument)
	}

	if err := r.account.Register(ctx, username, email, password); err != nil {
		return err
	}

	return r.writePlain("✓ Account created, run 'skillmorph auth login' to sign in\n")
}

// AuthForgotPassword requests a password reset email.
func (r *Runner) AuthForgotPassword(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	if email == "" {
		return fmt.Errorf("%w: --email is required", shared.ErrMissingArgument)
	}

	if err := r.account.ForgotPassword(ctx, email); err != nil {
		return err
	}

	return r.writePlain("✓ Reset email sent to %s\n", email)
}

// AuthResetPassword sets a new password with the emailed reset token.
func (r *Runner) AuthResetPassword(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	password := cmd.String("password")

	if token == "" || password == "" {
		return fmt.Errorf("%w: --token and --password are required", shared.ErrMissingArgument)
	}

	if err := r.account.ResetPassword(ctx, token, password); err != nil {
		return err
	}

	return r.writePlain("✓ Password updated\n")
}
