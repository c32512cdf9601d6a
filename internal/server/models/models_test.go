package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProficiencyLevel_RankAndValid(t *testing.T) {
	assert.Less(t, LevelA1.Rank(), LevelA2.Rank())
	assert.Less(t, LevelC2.Rank(), LevelNative.Rank())
	assert.Equal(t, 0, LevelUnset.Rank())
	assert.True(t, LevelUnset.Valid())
	assert.False(t, ProficiencyLevel("D1").Valid())

	l, err := ParseLevel("B2")
	require.NoError(t, err)
	assert.Equal(t, LevelB2, l)

	_, err = ParseLevel("expert")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestProfile_Snapshot_DefaultsName(t *testing.T) {
	p := &Profile{ID: "u1", PhotoURL: "http://img"}
	assert.Equal(t, Participant{UserID: "u1", DisplayName: common.DefaultDisplayName, PhotoURL: "http://img"}, p.Snapshot())

	p.DisplayName = "Greta"
	assert.Equal(t, "Greta", p.Snapshot().DisplayName)
}

func TestQueueEntry_Before(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &QueueEntry{UserID: "b", EnqueuedAt: t0}
	b := &QueueEntry{UserID: "a", EnqueuedAt: t0.Add(time.Second)}
	c := &QueueEntry{UserID: "a", EnqueuedAt: t0}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, c.Before(a), "ties are broken by user id")
}

func TestMatch_Participants(t *testing.T) {
	m := &Match{Participants: [2]Participant{{UserID: "a"}, {UserID: "b"}}}

	assert.True(t, m.HasParticipant("a"))
	assert.False(t, m.HasParticipant("c"))
	assert.Equal(t, "b", m.PartnerOf("a"))
	assert.Equal(t, "a", m.PartnerOf("b"))
	assert.Equal(t, "", m.PartnerOf("c"))
	assert.Equal(t, []string{"a", "b"}, m.ParticipantIDs())
}

func TestMatch_CloneIsDeep(t *testing.T) {
	now := time.Now()
	m := &Match{ID: "m", EndedAt: &now, LastMessage: &MessagePreview{Text: "hi"}}
	c := m.Clone()

	c.LastMessage.Text = "changed"
	*c.EndedAt = now.Add(time.Hour)

	assert.Equal(t, "hi", m.LastMessage.Text)
	assert.Equal(t, now, *m.EndedAt)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, strings.Repeat("a", 50), Truncate(strings.Repeat("a", 50), 50))
	assert.Equal(t, strings.Repeat("a", 50)+"...", Truncate(strings.Repeat("a", 51), 50))
	assert.Equal(t, "Grü...", Truncate("Grüße", 3))
}

func TestChatMessage_Preview(t *testing.T) {
	now := time.Now()
	msg := &ChatMessage{SenderID: "u1", Text: strings.Repeat("x", 60), CreatedAt: now}
	p := msg.Preview()

	assert.Equal(t, "u1", p.SenderID)
	assert.Equal(t, now, p.SentAt)
	assert.Len(t, p.Text, 53)
}
