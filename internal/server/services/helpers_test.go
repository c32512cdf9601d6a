package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/memstore"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		MatchConflictRetries: 50,
		MatchConflictBackoff: time.Millisecond,
		MatchStaleRetries:    1,
		S3Region:             "us-east-1",
		S3RootUser:           "minioadmin",
		S3RootPassword:       "minioadmin",
		S3BaseEndpoint:       "http://127.0.0.1:9000/",
		S3Bucket:             "langmatch",
	}
}

// clock hands out strictly increasing times so queue order is deterministic.
type clock struct{ n atomic.Int64 }

func (c *clock) Now() time.Time {
	return t0.Add(time.Duration(c.n.Add(1)) * time.Second)
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("m%d", g.n)
}

type recordingPublisher struct {
	mu  sync.Mutex
	evs []*events.Event
	err error
}

func (p *recordingPublisher) Publish(_ context.Context, e *events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evs = append(p.evs, e)
	return p.err
}

func (p *recordingPublisher) ofType(typ string) []*events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*events.Event
	for _, e := range p.evs {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	store *memstore.Store
	pub   *recordingPublisher
	mm    *MatchmakingService
	chat  *ChatService
	prof  *ProfileService
}

func newFixture(t *testing.T, cfg *config.Config, users ...string) *fixture {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	f := &fixture{store: memstore.New(), pub: &recordingPublisher{}}
	c := &clock{}
	f.mm = NewMatchmakingService(f.store, cfg, &seqIDs{}, f.pub, nil)
	f.mm.now = c.Now
	f.chat = NewChatService(f.store, cfg, &seqIDs{}, f.pub, nil)
	f.chat.now = c.Now
	f.prof = NewProfileService(f.store, cfg, nil)
	f.prof.now = c.Now

	for _, u := range users {
		_, err := f.prof.CreateProfile(context.Background(), u, u+"@example.com", "User "+u)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) profile(t *testing.T, id string) *models.Profile {
	t.Helper()
	p, err := f.store.Profiles().Get(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (f *fixture) queued(t *testing.T, id string) bool {
	t.Helper()
	_, err := f.store.Queue().Get(context.Background(), id)
	return err == nil
}

// match puts a and b into a match via the queue.
func (f *fixture) match(t *testing.T, a, b string) string {
	t.Helper()
	ctx := context.Background()
	_, err := f.mm.ToggleQueue(ctx, a, a, true)
	require.NoError(t, err)
	res, err := f.mm.RequestMatch(ctx, b, b)
	require.NoError(t, err)
	require.NotEmpty(t, res.MatchID)
	return res.MatchID
}
