// Package memstore is an in-process RepositoryManager for development and
// tests.
//
// Transactions work on a private snapshot of the store. Every key read or
// written is remembered and, at commit, checked against the sequence number
// of the last commit that touched it; any change since the snapshot aborts
// the commit with common.ErrTxConflict. Scans read a collection key that is
// bumped whenever a member of the collection changes.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/matches"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/messages"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/queue"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
)

const (
	queueCollection   = "queue/*"
	matchesCollection = "matches/*"
)

func profileKey(id string) string  { return "profiles/" + id }
func queueKey(id string) string    { return "queue/" + id }
func matchKey(id string) string    { return "matches/" + id }
func messagesKey(id string) string { return "messages/" + id }

// dataset holds every table. Values are stored by value and copied on the
// way in and out.
type dataset struct {
	profiles map[string]models.Profile
	queue    map[string]models.QueueEntry
	matches  map[string]*models.Match
	messages map[string][]models.ChatMessage
}

func newDataset() *dataset {
	return &dataset{
		profiles: make(map[string]models.Profile),
		queue:    make(map[string]models.QueueEntry),
		matches:  make(map[string]*models.Match),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		profiles: make(map[string]models.Profile, len(d.profiles)),
		queue:    make(map[string]models.QueueEntry, len(d.queue)),
		matches:  make(map[string]*models.Match, len(d.matches)),
		messages: make(map[string][]models.ChatMessage, len(d.messages)),
	}
	for k, v := range d.profiles {
		c.profiles[k] = v
	}
	for k, v := range d.queue {
		c.queue[k] = v
	}
	for k, v := range d.matches {
		c.matches[k] = v.Clone()
	}
	for k, v := range d.messages {
		c.messages[k] = append([]models.ChatMessage(nil), v...)
	}
	return c
}

// view is what repositories operate on: a dataset plus read/write tracking.
type view struct {
	d      *dataset
	reads  map[string]struct{}
	writes map[string]struct{}
}

func newView(d *dataset) *view {
	return &view{d: d, reads: make(map[string]struct{}), writes: make(map[string]struct{})}
}

func (v *view) read(keys ...string) {
	for _, k := range keys {
		v.reads[k] = struct{}{}
	}
}

func (v *view) wrote(keys ...string) {
	for _, k := range keys {
		v.writes[k] = struct{}{}
	}
}

// Store is the shared state. The zero value is not usable; call New.
type Store struct {
	mu       sync.Mutex
	data     *dataset
	seq      uint64
	versions map[string]uint64
}

var _ repomanager.RepositoryManager = (*Store)(nil)

func New() *Store {
	return &Store{data: newDataset(), versions: make(map[string]uint64)}
}

// autocommit runs a single repository call directly against the store.
func (s *Store) autocommit(fn func(v *view) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := newView(s.data)
	err := fn(v)
	if len(v.writes) > 0 {
		s.bump(v.writes)
	}
	return err
}

func (s *Store) bump(keys map[string]struct{}) {
	s.seq++
	for k := range keys {
		s.versions[k] = s.seq
	}
}

func (s *Store) repos(run runner) repomanager.Repositories {
	return &repositories{run: run}
}

func (s *Store) Profiles() profiles.Repository { return &profileRepo{run: s.autocommit} }
func (s *Store) Queue() queue.Repository       { return &queueRepo{run: s.autocommit} }
func (s *Store) Matches() matches.Repository   { return &matchRepo{run: s.autocommit} }
func (s *Store) Messages() messages.Repository { return &messageRepo{run: s.autocommit} }

// RunMigrations is a no-op; the schema is the Go types.
func (s *Store) RunMigrations(context.Context) error { return nil }

// WithTx runs fn against a snapshot and commits its writes if no key it
// touched was changed by another commit in the meantime.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, r repomanager.Repositories) error) error {
	s.mu.Lock()
	start := s.seq
	v := newView(s.data.clone())
	s.mu.Unlock()

	run := func(op func(v *view) error) error { return op(v) }
	if err := fn(ctx, s.repos(run)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.commit(start, v)
}

func (s *Store) commit(start uint64, v *view) error {
	if len(v.writes) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, set := range []map[string]struct{}{v.reads, v.writes} {
		for k := range set {
			if s.versions[k] > start {
				return fmt.Errorf("%w: %s changed concurrently", common.ErrTxConflict, k)
			}
		}
	}

	for k := range v.writes {
		s.apply(k, v.d)
	}
	s.bump(v.writes)
	return nil
}

// apply copies the transaction's value for key k into the store, deleting it
// when the transaction removed it.
func (s *Store) apply(k string, from *dataset) {
	kind, id, ok := splitKey(k)
	if !ok {
		return
	}
	switch kind {
	case "profiles":
		if p, ok := from.profiles[id]; ok {
			s.data.profiles[id] = p
		} else {
			delete(s.data.profiles, id)
		}
	case "queue":
		if e, ok := from.queue[id]; ok {
			s.data.queue[id] = e
		} else {
			delete(s.data.queue, id)
		}
	case "matches":
		if m, ok := from.matches[id]; ok {
			s.data.matches[id] = m.Clone()
		} else {
			delete(s.data.matches, id)
		}
	case "messages":
		s.data.messages[id] = append([]models.ChatMessage(nil), from.messages[id]...)
	}
}

// splitKey splits "kind/id". Collection keys ("kind/*") are not applied.
func splitKey(k string) (string, string, bool) {
	kind, id, ok := strings.Cut(k, "/")
	if !ok || id == "*" {
		return "", "", false
	}
	return kind, id, true
}

type runner func(fn func(v *view) error) error

type repositories struct {
	run runner
}

func (r *repositories) Profiles() profiles.Repository { return &profileRepo{run: r.run} }
func (r *repositories) Queue() queue.Repository       { return &queueRepo{run: r.run} }
func (r *repositories) Matches() matches.Repository   { return &matchRepo{run: r.run} }
func (r *repositories) Messages() messages.Repository { return &messageRepo{run: r.run} }
