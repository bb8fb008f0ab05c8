// Package repomanager vends repositories bound to a storage backend and runs
// work that must be atomic.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/promptbook/internal/dbx"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/promptbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// DB is the handle for work outside a transaction.
	DB() dbx.DBTX
	// WithTx runs fn atomically; repositories built from tx join the unit.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Prompts(db dbx.DBTX) prompts.Repository
	Close() error
}
