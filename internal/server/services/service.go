// Package services contains server-side business logic: the matchmaking
// queue, the matcher, the match lifecycle, chat and profiles.
//
// Every multi-record change runs in one RepositoryManager transaction.
// Transactions that lose a commit race are retried with exponential backoff.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

// Listing limits shared by match history and chat.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// base carries the collaborators every service needs.
type base struct {
	repos  repomanager.RepositoryManager
	events events.Publisher
	logger logging.Logger
	now    func() time.Time

	conflictRetries uint64
	conflictBackoff time.Duration
}

func newBase(rm repomanager.RepositoryManager, cfg *config.Config, pub events.Publisher, logger logging.Logger) base {
	if pub == nil {
		pub = events.Nop{}
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	retries := 0
	if cfg.MatchConflictRetries > 0 {
		retries = cfg.MatchConflictRetries
	}
	return base{
		repos:           rm,
		events:          pub,
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
		conflictRetries: uint64(retries),
		conflictBackoff: cfg.MatchConflictBackoff,
	}
}

// authorize lets callers act only on their own user id.
func authorize(caller, userID string) error {
	if caller == "" || userID == "" || caller != userID {
		return common.ErrorUnauthorized
	}
	return nil
}

// withConflictRetry runs fn, retrying it while it fails with
// common.ErrTxConflict. Once retries are exhausted the conflict is returned.
func (b *base) withConflictRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	backoff := b.conflictBackoff
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	policy := retry.WithMaxRetries(b.conflictRetries, retry.WithJitter(backoff/2, retry.NewExponential(backoff)))

	return retry.Do(ctx, policy, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrTxConflict) {
			metrics.TxConflicts.WithLabelValues(op).Inc()
			b.logger.Debug(ctx, "transaction conflict, retrying", "operation", op)
			return retry.RetryableError(err)
		}
		return err
	})
}

// publish sends events best effort.
func (b *base) publish(ctx context.Context, evs ...*events.Event) {
	for _, e := range evs {
		if err := b.events.Publish(ctx, e); err != nil {
			b.logger.Warn(ctx, "event publish failed", "type", e.Type, "error", err)
		}
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
