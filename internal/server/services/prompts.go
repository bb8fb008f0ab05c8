package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PromptService reads and writes the prompt rows visible to an account.
type PromptService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPromptService(m repomanager.RepositoryManager) *PromptService {
	return &PromptService{repomanager: m, now: time.Now}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, msg)
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid("malformed id")
	}
	return nil
}

// List returns the rows of userID plus every public row.
func (s *PromptService) List(ctx context.Context, userID string, ascending bool) ([]models.Prompt, error) {
	rows, err := s.repomanager.Prompts(s.repomanager.DB()).ListVisible(ctx, userID, ascending)
	if err != nil {
		return nil, fmt.Errorf("error listing prompts: %w", err)
	}
	return rows, nil
}

// Create stores p for userID. Id and owner are always assigned by the server;
// a zero created_at is set to now.
func (s *PromptService) Create(ctx context.Context, userID string, p models.Prompt) (*models.Prompt, error) {
	if p.Title == "" || p.Content == "" {
		return nil, invalid("title and content are required")
	}
	if p.Tokens < 0 {
		return nil, invalid("tokens must not be negative")
	}

	p.ID = ""
	p.UserID = userID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}

	created, err := s.repomanager.Prompts(s.repomanager.DB()).Create(ctx, &p)
	if err != nil {
		return nil, fmt.Errorf("error creating prompt: %w", err)
	}
	return created, nil
}

// Update patches a row owned by userID.
func (s *PromptService) Update(ctx context.Context, userID, id string, patch models.PromptPatch) (*models.Prompt, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if patch == (models.PromptPatch{}) {
		return nil, invalid("nothing to update")
	}
	if (patch.Title != nil && *patch.Title == "") || (patch.Content != nil && *patch.Content == "") {
		return nil, invalid("title and content are required")
	}
	if patch.Tokens != nil && *patch.Tokens < 0 {
		return nil, invalid("tokens must not be negative")
	}

	p, err := s.repomanager.Prompts(s.repomanager.DB()).Update(ctx, userID, id, patch)
	if err != nil {
		return nil, fmt.Errorf("error updating prompt: %w", err)
	}
	return p, nil
}

// Delete removes a row owned by userID.
func (s *PromptService) Delete(ctx context.Context, userID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.repomanager.Prompts(s.repomanager.DB()).Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting prompt: %w", err)
	}
	return nil
}
