package models

import "time"

// Prompt is a row of the prompts table. Every row belongs to UserID.
type Prompt struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`
	Category   string    `db:"category"`
	Model      string    `db:"model"`
	Tokens     int       `db:"tokens"`
	CreatedAt  time.Time `db:"created_at"`
	IsPublic   bool      `db:"is_public"`
	IsFavorite bool      `db:"is_favorite"`
}

// PromptPatch lists the columns an update writes. Nil fields are untouched;
// id, user_id and created_at cannot be patched.
type PromptPatch struct {
	Title      *string
	Content    *string
	Category   *string
	Model      *string
	Tokens     *int
	IsPublic   *bool
	IsFavorite *bool
}

// Apply writes the set fields of patch onto p.
func (patch PromptPatch) Apply(p *Prompt) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Model != nil {
		p.Model = *patch.Model
	}
	if patch.Tokens != nil {
		p.Tokens = *patch.Tokens
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	if patch.IsFavorite != nil {
		p.IsFavorite = *patch.IsFavorite
	}
}
