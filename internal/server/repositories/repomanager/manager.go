package repomanager

import (
	"context"

	"github.com/dmitrijs2005/langmatch/internal/server/repositories/matches"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/messages"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/queue"
)

// Repositories vends the per-table repositories bound to one handle: the
// database itself or a single transaction.
type Repositories interface {
	Profiles() profiles.Repository
	Queue() queue.Repository
	Matches() matches.Repository
	Messages() messages.Repository
}

// RepositoryManager is the storage backend of the server.
//
// WithTx runs fn against repositories bound to one serializable transaction.
// Nothing fn wrote is visible to others unless fn returns nil and the commit
// succeeds. A commit lost to a concurrent writer yields common.ErrTxConflict.
type RepositoryManager interface {
	Repositories
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	RunMigrations(ctx context.Context) error
}
