package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/dbx"
	"github.com/dmitrijs2005/promptbook/internal/server/config"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errDB = errors.New("db down")

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

func newUserService(t *testing.T, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	s := NewUserService(m, testConfig())
	s.bcryptCost = bcrypt.MinCost
	return s
}

// brokenManager wraps the memory backend and fails the repositories whose
// error field is set.
type brokenManager struct {
	*repomanager.InMemoryRepositoryManager
	usersErr   error
	tokensErr  error
	promptsErr error
}

func newBrokenManager() *brokenManager {
	return &brokenManager{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
}

func (m *brokenManager) Users(db dbx.DBTX) users.Repository {
	if m.usersErr != nil {
		return brokenUsers{m.usersErr}
	}
	return m.InMemoryRepositoryManager.Users(db)
}

func (m *brokenManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	if m.tokensErr != nil {
		return brokenTokens{m.tokensErr}
	}
	return m.InMemoryRepositoryManager.RefreshTokens(db)
}

func (m *brokenManager) Prompts(db dbx.DBTX) prompts.Repository {
	if m.promptsErr != nil {
		return brokenPrompts{m.promptsErr}
	}
	return m.InMemoryRepositoryManager.Prompts(db)
}

type brokenUsers struct{ err error }

func (b brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, b.err }
func (b brokenUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, b.err
}
func (b brokenUsers) GetUserByID(context.Context, string) (*models.User, error) { return nil, b.err }

type brokenTokens struct{ err error }

func (b brokenTokens) Create(context.Context, string, string, time.Duration) error { return b.err }
func (b brokenTokens) Find(context.Context, string) (*models.RefreshToken, error) {
	return nil, b.err
}
func (b brokenTokens) Delete(context.Context, string) error { return b.err }
func (b brokenTokens) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, b.err
}

type brokenPrompts struct{ err error }

func (b brokenPrompts) ListVisible(context.Context, string, bool) ([]models.Prompt, error) {
	return nil, b.err
}
func (b brokenPrompts) Create(context.Context, *models.Prompt) (*models.Prompt, error) {
	return nil, b.err
}
func (b brokenPrompts) Update(context.Context, string, string, models.PromptPatch) (*models.Prompt, error) {
	return nil, b.err
}
func (b brokenPrompts) Delete(context.Context, string, string) error { return b.err }
