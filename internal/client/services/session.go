package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/promptbook/internal/client/client"
	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/logging"
)

// SessionController owns the signed-in identity. It is the only component
// that navigates on auth events.
type SessionController struct {
	auth    client.Auth
	prompts *PromptStore
	state   *State
	nav     *Navigator
	logger  logging.Logger

	loading atomic.Bool

	mu          sync.Mutex
	ctx         context.Context
	unsubscribe func()
}

func NewSessionController(auth client.Auth, prompts *PromptStore, state *State, nav *Navigator, logger logging.Logger) *SessionController {
	if logger == nil {
		logger = logging.Nop{}
	}
	c := &SessionController{
		auth:    auth,
		prompts: prompts,
		state:   state,
		nav:     nav,
		logger:  logger,
		ctx:     context.Background(),
	}
	c.loading.Store(true)
	return c
}

// Start subscribes to auth events. ctx is used for the fetches the events
// trigger. Calling Start twice is a no-op.
func (c *SessionController) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		return
	}
	c.ctx = ctx
	c.unsubscribe = c.auth.OnAuthStateChange(func(ev client.AuthEvent) {
		c.OnSessionChanged(c.eventContext(), ev)
	})
}

func (c *SessionController) eventContext() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

// Close unsubscribes from auth events and waits for a running handler.
func (c *SessionController) Close() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Loading is true until RestoreSession has returned.
func (c *SessionController) Loading() bool {
	return c.loading.Load()
}

// RestoreSession picks up an existing session at startup. Any failure is
// treated as "no session".
func (c *SessionController) RestoreSession(ctx context.Context) {
	defer c.loading.Store(false)

	sess, err := c.auth.GetSession(ctx)
	if err != nil {
		c.logger.Warn(ctx, "session restore failed", "error", err)
		return
	}
	if sess == nil {
		c.logger.Debug(ctx, "no session to restore")
		return
	}
	c.signedIn(ctx, sess)
}

// OnSessionChanged applies an auth event. A token refresh for the user that
// is already signed in only refreshes the identity.
func (c *SessionController) OnSessionChanged(ctx context.Context, ev client.AuthEvent) {
	c.logger.Debug(ctx, "auth event", "kind", string(ev.Kind))

	if ev.Session == nil {
		c.state.signOut()
		c.nav.SignedOut()
		return
	}

	same := c.state.Snapshot().UserID == ev.Session.User.ID
	if same && (ev.Kind == client.EventTokenRefreshed || ev.Kind == client.EventUserUpdated) {
		c.state.signIn(models.DeriveIdentity(ev.Session.User.Email), ev.Session.User.ID)
		return
	}
	c.signedIn(ctx, ev.Session)
}

func (c *SessionController) signedIn(ctx context.Context, sess *client.Session) {
	c.state.signIn(models.DeriveIdentity(sess.User.Email), sess.User.ID)
	c.nav.SignedIn()
	_ = c.prompts.FetchAll(ctx)
}

// SignIn authenticates with email and password. The resulting navigation
// arrives through the SIGNED_IN event.
func (c *SessionController) SignIn(ctx context.Context, email, password string) error {
	if _, err := c.auth.SignInWithPassword(ctx, email, password); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

// SignUp creates an account. The user still has to sign in afterwards.
func (c *SessionController) SignUp(ctx context.Context, email, password string) (*client.User, error) {
	u, err := c.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return u, nil
}

// SignInWithOAuth returns the provider URL the user has to open.
func (c *SessionController) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	url, err := c.auth.SignInWithOAuth(ctx, provider, redirectTo)
	if err != nil {
		return "", fmt.Errorf("sign in with %s: %w", provider, err)
	}
	return url, nil
}

// SignOut asks the remote store to end the session. Local state is cleared
// by the SIGNED_OUT event, not here.
func (c *SessionController) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
