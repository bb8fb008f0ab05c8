package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

var ErrInvalidTransition = errors.New("invalid view transition")

// Navigator moves the (view, selection) pair of a State. Transitions that
// the current view does not allow return ErrInvalidTransition and change nothing.
type Navigator struct {
	state *State
}

func NewNavigator(state *State) *Navigator {
	return &Navigator{state: state}
}

func isListView(v models.View) bool {
	return v == models.ViewLanding || v == models.ViewFavorites || v == models.ViewLibrary
}

func invalid(from models.View, trigger string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, trigger, from)
}

// transition runs fn under the state lock and wakes waiters if it succeeded.
func (n *Navigator) transition(fn func(s *State) error) error {
	s := n.state
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s); err != nil {
		return err
	}
	s.notifyLocked()
	return nil
}

// SignedOut is legal from any view and clears the selection.
func (n *Navigator) SignedOut() {
	_ = n.transition(func(s *State) error {
		s.view = models.ViewUnauthenticated
		s.selected = nil
		return nil
	})
}

// SignedIn shows the landing view. A session can also be (re)established
// while already signed in, so it is legal from any view.
func (n *Navigator) SignedIn() {
	_ = n.transition(func(s *State) error {
		s.view = models.ViewLanding
		return nil
	})
}

// Open shows p in the detail view.
func (n *Navigator) Open(p models.Prompt) error {
	return n.transition(func(s *State) error {
		if !isListView(s.view) {
			return invalid(s.view, "open")
		}
		s.view = models.ViewDetail
		s.selected = &p
		return nil
	})
}

// Create opens a blank editor.
func (n *Navigator) Create() error {
	return n.transition(func(s *State) error {
		if s.view == models.ViewUnauthenticated {
			return invalid(s.view, "create")
		}
		s.view = models.ViewEditor
		s.selected = nil
		return nil
	})
}

// Edit opens the editor. From a list view p becomes the selection; from the
// detail view the current selection is kept and p is ignored.
func (n *Navigator) Edit(p *models.Prompt) error {
	return n.transition(func(s *State) error {
		switch {
		case s.view == models.ViewDetail && s.selected != nil:
		case isListView(s.view) && p != nil:
			s.selected = clonePrompt(p)
		default:
			return invalid(s.view, "edit")
		}
		s.view = models.ViewEditor
		return nil
	})
}

// Cancel leaves the editor: back to the detail view when editing an
// existing prompt, to the landing view when creating.
func (n *Navigator) Cancel() error {
	return n.transition(func(s *State) error {
		if s.view != models.ViewEditor {
			return invalid(s.view, "cancel")
		}
		if s.selected != nil {
			s.view = models.ViewDetail
		} else {
			s.view = models.ViewLanding
		}
		return nil
	})
}

// Saved shows the row the store returned after a save.
func (n *Navigator) Saved(p models.Prompt) error {
	return n.transition(func(s *State) error {
		if s.view != models.ViewEditor {
			return invalid(s.view, "save")
		}
		s.view = models.ViewDetail
		s.selected = &p
		return nil
	})
}

// Deleted returns to the landing view with the selection cleared.
func (n *Navigator) Deleted() error {
	return n.transition(func(s *State) error {
		if s.view != models.ViewDetail && !isListView(s.view) {
			return invalid(s.view, "delete")
		}
		s.view = models.ViewLanding
		s.selected = nil
		return nil
	})
}

// Show switches between the bottom navigation tabs: landing, favorites,
// library and settings. The editor has to be left with Cancel first.
func (n *Navigator) Show(v models.View) error {
	return n.transition(func(s *State) error {
		switch v {
		case models.ViewLanding, models.ViewFavorites, models.ViewLibrary, models.ViewSettings:
		default:
			return invalid(s.view, "show "+v.String())
		}
		if s.view == models.ViewUnauthenticated || s.view == models.ViewEditor {
			return invalid(s.view, "show "+v.String())
		}
		s.view = v
		return nil
	})
}

// Back leaves the detail view for the landing view.
func (n *Navigator) Back() error {
	return n.transition(func(s *State) error {
		if s.view != models.ViewDetail {
			return invalid(s.view, "back")
		}
		s.view = models.ViewLanding
		return nil
	})
}
