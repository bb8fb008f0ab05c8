package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

// Snapshot is a copy of State at one instant.
type Snapshot struct {
	Identity *models.Identity
	UserID   string
	Prompts  []models.Prompt
	View     models.View
	Selected *models.Prompt
}

// State holds the identity, the prompt collection and the navigation pair.
// Every accessor returns copies; mutation goes through the navigator, the
// session controller and the prompt store.
type State struct {
	mu sync.RWMutex

	identity *models.Identity
	userID   string
	prompts  []models.Prompt
	view     models.View
	selected *models.Prompt

	// fetch sequence numbers: issued counts started fetches, applied is the
	// newest one whose result is in prompts.
	issued  uint64
	applied uint64

	changed chan struct{}
}

func NewState() *State {
	return &State{
		view:    models.ViewUnauthenticated,
		changed: make(chan struct{}),
	}
}

// notifyLocked wakes WaitFor callers. s.mu must be held for writing.
func (s *State) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	snap := Snapshot{
		UserID:   s.userID,
		Prompts:  slices.Clone(s.prompts),
		View:     s.view,
		Selected: clonePrompt(s.selected),
	}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

func (s *State) Prompts() []models.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.prompts)
}

func (s *State) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// UserID is the account id of the signed-in user, empty when signed out.
func (s *State) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *State) View() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *State) Selected() *models.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePrompt(s.selected)
}

// Find returns the collection entry with the given id.
func (s *State) Find(id string) (models.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.prompts, func(p models.Prompt) bool { return p.ID == id })
	if i < 0 {
		return models.Prompt{}, false
	}
	return s.prompts[i], true
}

// WaitFor blocks until cond holds for a snapshot or ctx is done.
func (s *State) WaitFor(ctx context.Context, cond func(Snapshot) bool) error {
	for {
		s.mu.RLock()
		snap := s.snapshotLocked()
		changed := s.changed
		s.mu.RUnlock()

		if cond(snap) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (s *State) signIn(identity models.Identity, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != userID {
		s.prompts = nil
		s.applied = s.issued
	}
	s.identity = &identity
	s.userID = userID
	s.notifyLocked()
}

// signOut drops the identity and the collection and invalidates fetches
// still in flight.
func (s *State) signOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.userID = ""
	s.prompts = nil
	s.applied = s.issued
	s.notifyLocked()
}

func (s *State) beginFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// replacePrompts installs the result of fetch seq unless a newer fetch has
// already been applied or the session ended meanwhile. It reports whether
// the result was applied.
func (s *State) replacePrompts(seq uint64, prompts []models.Prompt) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied || s.identity == nil {
		return false
	}
	s.applied = seq
	s.prompts = prompts
	s.notifyLocked()
	return true
}

// setFavorite updates the collection entry and the selection snapshot.
func (s *State) setFavorite(id string, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.prompts {
		if s.prompts[i].ID == id {
			s.prompts[i].IsFavorite = v
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected.IsFavorite = v
	}
	s.notifyLocked()
}

func (s *State) removePrompt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = slices.DeleteFunc(s.prompts, func(p models.Prompt) bool { return p.ID == id })
	s.notifyLocked()
}

func clonePrompt(p *models.Prompt) *models.Prompt {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
