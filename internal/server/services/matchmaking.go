package services

import (
	"github.com/dmitrijs2005/langmatch/internal/idgen"
	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

// MatchmakingService implements the queue toggle, the matcher and the match
// lifecycle. It keeps no state of its own; concurrent requests, possibly in
// different processes, are serialized by the storage transactions.
type MatchmakingService struct {
	base
	ids          idgen.Generator
	staleRetries int
	byLevel      bool
}

// NewMatchmakingService builds the service. ids generates match ids.
func NewMatchmakingService(rm repomanager.RepositoryManager, cfg *config.Config, ids idgen.Generator,
	pub events.Publisher, logger logging.Logger) *MatchmakingService {
	if logger == nil {
		logger = logging.Nop{}
	}
	stale := cfg.MatchStaleRetries
	if stale < 0 {
		stale = 0
	}
	return &MatchmakingService{
		base:         newBase(rm, cfg, pub, logger.With("module", "matchmaking")),
		ids:          ids,
		staleRetries: stale,
		byLevel:      cfg.MatchByLevel,
	}
}
