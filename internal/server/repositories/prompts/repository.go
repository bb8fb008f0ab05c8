// Package prompts declares the prompt-row repository and its PostgreSQL
// implementation. Writes are always scoped to the owning user.
package prompts

import (
	"context"

	"github.com/dmitrijs2005/promptbook/internal/server/models"
)

// Repository stores prompt rows.
type Repository interface {
	// ListVisible returns the rows of userID plus every public row, ordered
	// by created_at (newest first unless ascending).
	ListVisible(ctx context.Context, userID string, ascending bool) ([]models.Prompt, error)
	// Create inserts p and fills in its ID.
	Create(ctx context.Context, p *models.Prompt) (*models.Prompt, error)
	// Update applies patch to the row id owned by userID and returns the
	// result. A missing or foreign row yields common.ErrorNotFound.
	Update(ctx context.Context, userID, id string, patch models.PromptPatch) (*models.Prompt, error)
	// Delete removes the row id owned by userID. A missing or foreign row
	// yields common.ErrorNotFound.
	Delete(ctx context.Context, userID, id string) error
}
