package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/client/client"
	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/logging"
)

var (
	ErrSessionExpired = errors.New("session expired, please sign in again")
	ErrSaveInProgress = errors.New("a save of this prompt is already in progress")
	ErrNotOwner       = errors.New("only the owner can change this prompt")
)

// PromptStore keeps the signed-in user's prompt collection in State in step
// with the remote store.
type PromptStore struct {
	remote client.RemoteStore
	state  *State
	nav    *Navigator
	logger logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	saving map[string]struct{}
}

func NewPromptStore(remote client.RemoteStore, state *State, nav *Navigator, logger logging.Logger) *PromptStore {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &PromptStore{
		remote: remote,
		state:  state,
		nav:    nav,
		logger: logger,
		now:    time.Now,
		saving: make(map[string]struct{}),
	}
}

func newestFirst(a, b models.Prompt) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}

// FetchAll replaces the collection with every row of the remote store,
// newest first. On failure the collection is left as it was. A response that
// arrives after a newer fetch has been applied is dropped.
func (s *PromptStore) FetchAll(ctx context.Context) error {
	seq := s.state.beginFetch()

	prompts, err := s.remote.SelectAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch prompts", "error", err)
		return fmt.Errorf("fetch prompts: %w", err)
	}

	slices.SortStableFunc(prompts, newestFirst)
	if !s.state.replacePrompts(seq, prompts) {
		s.logger.Debug(ctx, "discarded stale fetch result", "seq", seq)
	}
	return nil
}

// Save validates p and writes it: an update when p carries a store-assigned
// id, an insert otherwise. On success the collection is refetched and the
// returned row becomes the selection shown in the detail view.
func (s *PromptStore) Save(ctx context.Context, p models.Prompt) (models.Prompt, error) {
	if p.Title == "" || p.Content == "" {
		return models.Prompt{}, models.ErrValidation
	}

	sess, err := s.remote.GetSession(ctx)
	if err != nil {
		s.logger.Warn(ctx, "session lookup failed before save", "error", err)
	}
	if sess == nil {
		s.nav.SignedOut()
		return models.Prompt{}, ErrSessionExpired
	}

	if p.Persisted() && !p.OwnedBy(sess.User.ID) {
		return models.Prompt{}, ErrNotOwner
	}

	if !s.acquire(p.ID) {
		return models.Prompt{}, ErrSaveInProgress
	}
	defer s.release(p.ID)

	p.Tokens = models.EstimateTokens(p.Content)

	var saved models.Prompt
	if p.Persisted() {
		saved, err = s.remote.UpdateByID(ctx, p.ID, client.EditPatch(p))
	} else {
		p.CreatedAt = cmp.Or(p.CreatedAt, s.now())
		saved, err = s.remote.Insert(ctx, p)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to save prompt", "id", p.ID, "error", err)
		return models.Prompt{}, fmt.Errorf("save prompt: %w", err)
	}

	_ = s.FetchAll(ctx)

	if err := s.nav.Saved(saved); err != nil {
		s.logger.Warn(ctx, "saved prompt not shown", "id", saved.ID, "error", err)
	}
	return saved, nil
}

func (s *PromptStore) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.saving[id]; busy {
		return false
	}
	s.saving[id] = struct{}{}
	return true
}

func (s *PromptStore) release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saving, id)
}

// ToggleFavorite flips the favorite flag of p remotely and, only once the
// store confirmed it, in the collection and the selection.
func (s *PromptStore) ToggleFavorite(ctx context.Context, p models.Prompt) error {
	if !s.CanModify(p) {
		return ErrNotOwner
	}
	v := !p.IsFavorite
	if _, err := s.remote.UpdateByID(ctx, p.ID, client.FavoritePatch(v)); err != nil {
		s.logger.Error(ctx, "failed to toggle favorite", "id", p.ID, "error", err)
		return fmt.Errorf("toggle favorite: %w", err)
	}
	s.state.setFavorite(p.ID, v)
	return nil
}

// CanModify reports whether the signed-in user owns p. The library lists
// public prompts of other accounts, which can only be read.
func (s *PromptStore) CanModify(p models.Prompt) bool {
	return p.OwnedBy(s.state.UserID())
}

// Remove deletes the prompt remotely, then drops it locally and returns to
// the landing view. On failure nothing changes locally.
func (s *PromptStore) Remove(ctx context.Context, id string) error {
	if p, ok := s.state.Find(id); ok && !s.CanModify(p) {
		return ErrNotOwner
	}
	if err := s.remote.DeleteByID(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete prompt", "id", id, "error", err)
		return fmt.Errorf("delete prompt: %w", err)
	}
	s.state.removePrompt(id)
	if err := s.nav.Deleted(); err != nil {
		s.logger.Warn(ctx, "deleted prompt outside a prompt view", "id", id, "error", err)
	}
	return nil
}
