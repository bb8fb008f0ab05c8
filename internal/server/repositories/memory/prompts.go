package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/prompts"
	"github.com/google/uuid"
)

type PromptRepository struct {
	s *Store
}

var _ prompts.Repository = (*PromptRepository)(nil)

// ListVisible orders by created_at and then by id so equal timestamps come
// back in a stable order.
func (r *PromptRepository) ListVisible(ctx context.Context, userID string, ascending bool) ([]models.Prompt, error) {
	r.s.mu.RLock()
	result := make([]models.Prompt, 0, len(r.s.prompts))
	for _, p := range r.s.prompts {
		if p.UserID == userID || p.IsPublic {
			result = append(result, p)
		}
	}
	r.s.mu.RUnlock()

	slices.SortFunc(result, func(a, b models.Prompt) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
	return result, nil
}

func (r *PromptRepository) Create(ctx context.Context, p *models.Prompt) (*models.Prompt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = uuid.NewString()
	r.s.prompts[p.ID] = *p
	return p, nil
}

func (r *PromptRepository) Update(ctx context.Context, userID, id string, patch models.PromptPatch) (*models.Prompt, error) {
	if patch == (models.PromptPatch{}) {
		return nil, fmt.Errorf("%w: empty patch", common.ErrorInvalidArgument)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.prompts[id]
	if !ok || p.UserID != userID {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&p)
	r.s.prompts[id] = p
	return &p, nil
}

func (r *PromptRepository) Delete(ctx context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.prompts[id]
	if !ok || p.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.prompts, id)
	return nil
}
