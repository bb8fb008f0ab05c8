package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/promptbook/internal/dbx"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves every repository from one memory.Store.
// The DBTX arguments are ignored. WithTx serializes units of work against
// each other but does not roll back a failed one.
type InMemoryRepositoryManager struct {
	store *memory.Store
	txMu  sync.Mutex
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) DB() dbx.DBTX { return nil }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens()
}

func (m *InMemoryRepositoryManager) Prompts(dbx.DBTX) prompts.Repository {
	return m.store.Prompts()
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
