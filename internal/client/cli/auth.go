package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/client/services"
	"github.com/dmitrijs2005/promptbook/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage")

// readCredentials prompts for an email and a password. The caller wipes the
// returned password.
func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password and creates a new account.
// The user signs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	u, err := a.session.SignUp(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, okText("Account created for "+u.Email+", you can log in now"))
	return nil
}

// Login prompts for credentials and signs in. It returns once the session
// event has moved the app to the dashboard and the prompts are loaded.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	cctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.session.SignIn(cctx, email, string(password)); err != nil {
		return err
	}

	if err := a.waitFor(ctx, func(s services.Snapshot) bool {
		return s.View != models.ViewUnauthenticated && s.Identity != nil && strings.EqualFold(s.Identity.Email, email)
	}); err != nil {
		return fmt.Errorf("waiting for session: %w", err)
	}
	if err := a.prompts.FetchAll(cctx); err != nil {
		return err
	}

	a.filter = services.Filter{}
	fmt.Fprintln(a.out, okText("Login successful"))
	a.render()
	return nil
}

// OAuth prints the provider URL that completes a third-party sign-in.
func (a *App) OAuth(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: oauth <provider>", errUsage)
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	url, err := a.session.SignInWithOAuth(ctx, args[0], a.config.OAuthRedirectURL)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Open this address in a browser to continue:")
	fmt.Fprintln(a.out, url)
	return nil
}

// Logout ends the session and waits for the app to return to the login
// screen.
func (a *App) Logout(ctx context.Context) error {
	cctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.session.SignOut(cctx); err != nil {
		return err
	}
	if err := a.waitFor(ctx, func(s services.Snapshot) bool {
		return s.View == models.ViewUnauthenticated
	}); err != nil {
		return fmt.Errorf("waiting for sign out: %w", err)
	}

	a.filter = services.Filter{}
	a.listed = nil
	fmt.Fprintln(a.out, okText("Logged out"))
	return nil
}

// Whoami prints the signed-in identity without leaving the current view.
func (a *App) Whoami(context.Context) error {
	snap := a.state.Snapshot()
	renderSettings(a.out, snap.Identity, snap.UserID, snap.Prompts)
	return nil
}

func (a *App) waitFor(ctx context.Context, cond func(services.Snapshot) bool) error {
	ctx, cancel := context.WithTimeout(ctx, signInWait)
	defer cancel()
	return a.state.WaitFor(ctx, cond)
}
