package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

// Auth is the authentication half of the remote store.
type Auth interface {
	// GetSession returns the current session, or nil, nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	// OnAuthStateChange registers handler for auth events and returns the
	// function that removes it. Handlers run on their own goroutine.
	OnAuthStateChange(handler func(AuthEvent)) (unsubscribe func())
	SignInWithPassword(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password string) (*User, error)
	// SignInWithOAuth returns the provider authorization URL to open.
	SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error)
	SignOut(ctx context.Context) error
}

// Records is the prompts table of the remote store, scoped to the session user.
type Records interface {
	// SelectAll returns every row ordered by created_at, newest first.
	SelectAll(ctx context.Context) ([]models.Prompt, error)
	Insert(ctx context.Context, p models.Prompt) (models.Prompt, error)
	UpdateByID(ctx context.Context, id string, patch PromptPatch) (models.Prompt, error)
	DeleteByID(ctx context.Context, id string) error
}

type RemoteStore interface {
	Auth
	Records
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated context bound to one user account.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type AuthEventKind string

const (
	EventSignedIn       AuthEventKind = "SIGNED_IN"
	EventSignedOut      AuthEventKind = "SIGNED_OUT"
	EventTokenRefreshed AuthEventKind = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEventKind = "USER_UPDATED"
)

// AuthEvent reports a session transition. Session is nil after sign-out.
type AuthEvent struct {
	Kind    AuthEventKind
	Session *Session
}

// PromptPatch lists the fields an update changes. Nil fields are untouched.
type PromptPatch struct {
	Title      *string
	Content    *string
	Category   *models.Category
	Model      *models.AIModel
	Tokens     *int
	IsPublic   *bool
	IsFavorite *bool
}

// EditPatch is the patch an editor save sends: every editable column plus the
// favorite flag. CreatedAt is never part of an update.
func EditPatch(p models.Prompt) PromptPatch {
	return PromptPatch{
		Title:      &p.Title,
		Content:    &p.Content,
		Category:   &p.Category,
		Model:      &p.Model,
		Tokens:     &p.Tokens,
		IsPublic:   &p.IsPublic,
		IsFavorite: &p.IsFavorite,
	}
}

// FavoritePatch changes only the favorite flag.
func FavoritePatch(v bool) PromptPatch {
	return PromptPatch{IsFavorite: &v}
}
