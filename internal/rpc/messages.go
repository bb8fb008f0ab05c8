package rpc

import "time"

// Select orderings understood by SelectPrompts.
const (
	OrderCreatedAtDesc = "created_at.desc"
	OrderCreatedAtAsc  = "created_at.asc"
)

// PingStatusOK is the status a healthy server answers Ping with.
const PingStatusOK = "OK"

// PromptRow is one row of the prompts table as it travels on the wire.
// IsFavorite is nullable: rows written before the column existed carry none.
type PromptRow struct {
	ID         string    `json:"id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Model      string    `json:"model"`
	Tokens     int       `json:"tokens"`
	CreatedAt  time.Time `json:"created_at"`
	IsPublic   bool      `json:"is_public"`
	IsFavorite *bool     `json:"is_favorite,omitempty"`
}

// PromptPatch lists the columns an update touches. Nil fields are left as is.
type PromptPatch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Category   *string `json:"category,omitempty"`
	Model      *string `json:"model,omitempty"`
	Tokens     *int    `json:"tokens,omitempty"`
	IsPublic   *bool   `json:"is_public,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PromptPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.Model == nil &&
		p.Tokens == nil && p.IsPublic == nil && p.IsFavorite == nil
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User User `json:"user"`
}

type SessionResponse struct {
	Session Session `json:"session"`
}

type SignInWithOAuthRequest struct {
	Provider   string `json:"provider"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type SignInWithOAuthResponse struct {
	URL string `json:"url"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type GetUserRequest struct{}

type SelectPromptsRequest struct {
	Order string `json:"order,omitempty"`
}

type SelectPromptsResponse struct {
	Rows []PromptRow `json:"rows"`
}

type InsertPromptRequest struct {
	Row PromptRow `json:"row"`
}

type UpdatePromptRequest struct {
	ID    string      `json:"id"`
	Patch PromptPatch `json:"patch"`
}

type PromptResponse struct {
	Row PromptRow `json:"row"`
}

type DeletePromptRequest struct {
	ID string `json:"id"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// Empty is returned by calls that answer nothing.
type Empty struct{}
