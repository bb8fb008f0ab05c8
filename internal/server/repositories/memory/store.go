// Package memory keeps accounts, refresh tokens and prompts in process
// memory. It backs the server when no database DSN is configured and the
// end-to-end tests.
package memory

import (
	"sync"

	"github.com/dmitrijs2005/promptbook/internal/server/models"
)

// Store holds every table. Repositories created from the same Store share it.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	tokens  map[string]models.RefreshToken
	prompts map[string]models.Prompt
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string]models.RefreshToken),
		prompts: make(map[string]models.Prompt),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func (s *Store) RefreshTokens() *RefreshTokenRepository {
	return &RefreshTokenRepository{s: s}
}

func (s *Store) Prompts() *PromptRepository {
	return &PromptRepository{s: s}
}
