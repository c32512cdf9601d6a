package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/server/models"
)

type profileRepo struct{ run runner }

func (r *profileRepo) Create(_ context.Context, p *models.Profile) error {
	return r.run(func(v *view) error {
		k := profileKey(p.ID)
		v.read(k)
		if _, ok := v.d.profiles[p.ID]; ok {
			return common.ErrorAlreadyExists
		}
		c := *p
		c.UpdatedAt = c.CreatedAt
		v.d.profiles[p.ID] = c
		v.wrote(k)
		return nil
	})
}

func (r *profileRepo) Get(_ context.Context, id string) (*models.Profile, error) {
	var out *models.Profile
	err := r.run(func(v *view) error {
		v.read(profileKey(id))
		p, ok := v.d.profiles[id]
		if !ok {
			return common.ErrorNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *profileRepo) update(id string, fn func(p *models.Profile)) error {
	return r.run(func(v *view) error {
		k := profileKey(id)
		v.read(k)
		p, ok := v.d.profiles[id]
		if !ok {
			return common.ErrorNotFound
		}
		fn(&p)
		v.d.profiles[id] = p
		v.wrote(k)
		return nil
	})
}

func (r *profileRepo) UpdateDetails(_ context.Context, p *models.Profile) error {
	return r.update(p.ID, func(cur *models.Profile) {
		cur.DisplayName = p.DisplayName
		cur.Bio = p.Bio
		cur.ProficiencyLevel = p.ProficiencyLevel
		cur.UpdatedAt = p.UpdatedAt
	})
}

func (r *profileRepo) SetPhoto(_ context.Context, id, url, key string) error {
	return r.update(id, func(cur *models.Profile) {
		cur.PhotoURL = url
		cur.PhotoKey = key
		cur.UpdatedAt = time.Now().UTC()
	})
}

func (r *profileRepo) SetMatchState(_ context.Context, id string, looking bool, currentMatchID string) error {
	if looking && currentMatchID != "" {
		return common.ErrAlreadyMatched
	}
	return r.update(id, func(cur *models.Profile) {
		cur.IsLookingForMatch = looking
		cur.CurrentMatchID = currentMatchID
		cur.UpdatedAt = time.Now().UTC()
	})
}

func (r *profileRepo) ClearMatchIfEquals(_ context.Context, id, matchID string) (bool, error) {
	var changed bool
	err := r.run(func(v *view) error {
		k := profileKey(id)
		v.read(k)
		p, ok := v.d.profiles[id]
		if !ok || p.CurrentMatchID != matchID {
			return nil
		}
		p.CurrentMatchID = ""
		p.UpdatedAt = time.Now().UTC()
		v.d.profiles[id] = p
		v.wrote(k)
		changed = true
		return nil
	})
	return changed, err
}

type queueRepo struct{ run runner }

func (r *queueRepo) Enqueue(_ context.Context, e *models.QueueEntry) error {
	return r.run(func(v *view) error {
		k := queueKey(e.UserID)
		v.read(k)
		if cur, ok := v.d.queue[e.UserID]; ok {
			cur.ProficiencyLevel = e.ProficiencyLevel
			v.d.queue[e.UserID] = cur
		} else {
			v.d.queue[e.UserID] = *e
		}
		v.wrote(k, queueCollection)
		return nil
	})
}

func (r *queueRepo) Dequeue(_ context.Context, userID string) error {
	return r.run(func(v *view) error {
		k := queueKey(userID)
		v.read(k)
		if _, ok := v.d.queue[userID]; !ok {
			return nil
		}
		delete(v.d.queue, userID)
		v.wrote(k, queueCollection)
		return nil
	})
}

func (r *queueRepo) Get(_ context.Context, userID string) (*models.QueueEntry, error) {
	var out *models.QueueEntry
	err := r.run(func(v *view) error {
		v.read(queueKey(userID))
		e, ok := v.d.queue[userID]
		if !ok {
			return common.ErrorNotFound
		}
		out = &e
		return nil
	})
	return out, err
}

func (r *queueRepo) PeekOldest(_ context.Context, excludeUserID string, level models.ProficiencyLevel) (*models.QueueEntry, error) {
	var out *models.QueueEntry
	err := r.run(func(v *view) error {
		v.read(queueCollection)
		for _, e := range v.d.queue {
			if e.UserID == excludeUserID {
				continue
			}
			if level != models.LevelUnset && e.ProficiencyLevel != level {
				continue
			}
			if out == nil || e.Before(out) {
				c := e
				out = &c
			}
		}
		if out == nil {
			return common.ErrorNotFound
		}
		v.read(queueKey(out.UserID))
		return nil
	})
	return out, err
}

func (r *queueRepo) SetLevel(_ context.Context, userID string, level models.ProficiencyLevel) error {
	return r.run(func(v *view) error {
		k := queueKey(userID)
		v.read(k)
		e, ok := v.d.queue[userID]
		if !ok {
			return nil
		}
		e.ProficiencyLevel = level
		v.d.queue[userID] = e
		v.wrote(k, queueCollection)
		return nil
	})
}

func (r *queueRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.run(func(v *view) error {
		v.read(queueCollection)
		n = len(v.d.queue)
		return nil
	})
	return n, err
}

type matchRepo struct{ run runner }

func (r *matchRepo) Create(_ context.Context, m *models.Match) error {
	if m.Participants[0].UserID == m.Participants[1].UserID {
		return common.ErrorValidation
	}
	return r.run(func(v *view) error {
		k := matchKey(m.ID)
		v.read(k)
		if _, ok := v.d.matches[m.ID]; ok {
			return common.ErrorAlreadyExists
		}
		v.d.matches[m.ID] = m.Clone()
		v.wrote(k, matchesCollection)
		return nil
	})
}

func (r *matchRepo) Get(_ context.Context, id string) (*models.Match, error) {
	var out *models.Match
	err := r.run(func(v *view) error {
		v.read(matchKey(id))
		m, ok := v.d.matches[id]
		if !ok {
			return common.ErrorNotFound
		}
		out = m.Clone()
		return nil
	})
	return out, err
}

func (r *matchRepo) End(_ context.Context, id string, at time.Time) (bool, error) {
	var ended bool
	err := r.run(func(v *view) error {
		k := matchKey(id)
		v.read(k)
		m, ok := v.d.matches[id]
		if !ok || m.Status != models.MatchActive {
			return nil
		}
		m.Status = models.MatchEnded
		t := at
		m.EndedAt = &t
		v.wrote(k, matchesCollection)
		ended = true
		return nil
	})
	return ended, err
}

func (r *matchRepo) SetLastMessage(_ context.Context, id string, p *models.MessagePreview) error {
	return r.run(func(v *view) error {
		k := matchKey(id)
		v.read(k)
		m, ok := v.d.matches[id]
		if !ok {
			return common.ErrorNotFound
		}
		c := *p
		m.LastMessage = &c
		v.wrote(k, matchesCollection)
		return nil
	})
}

func (r *matchRepo) ListByParticipant(_ context.Context, userID string, limit int) ([]*models.Match, error) {
	var out []*models.Match
	err := r.run(func(v *view) error {
		v.read(matchesCollection)
		for _, m := range v.d.matches {
			if m.HasParticipant(userID) {
				out = append(out, m.Clone())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type messageRepo struct{ run runner }

func (r *messageRepo) Create(_ context.Context, m *models.ChatMessage) error {
	return r.run(func(v *view) error {
		if _, ok := v.d.matches[m.MatchID]; !ok {
			return common.ErrorNotFound
		}
		k := messagesKey(m.MatchID)
		v.read(k, matchKey(m.MatchID))
		v.d.messages[m.MatchID] = append(v.d.messages[m.MatchID], *m)
		v.wrote(k)
		return nil
	})
}

func (r *messageRepo) ListRecent(_ context.Context, matchID string, limit int) ([]*models.ChatMessage, error) {
	var out []*models.ChatMessage
	err := r.run(func(v *view) error {
		v.read(messagesKey(matchID))
		all := v.d.messages[matchID]
		sorted := make([]models.ChatMessage, len(all))
		copy(sorted, all)
		sort.SliceStable(sorted, func(i, j int) bool {
			if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
				return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
			}
			return sorted[i].ID < sorted[j].ID
		})
		if limit > 0 && len(sorted) > limit {
			sorted = sorted[len(sorted)-limit:]
		}
		for i := range sorted {
			out = append(out, &sorted[i])
		}
		return nil
	})
	return out, err
}
