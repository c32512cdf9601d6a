package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/auth"
	"github.com/stretchr/testify/require"
)

func TestToken_RawToken(t *testing.T) {
	silence(t)
	api := &fakeClient{}
	app := newTestApp(api, "")
	app.currentMatch = "old"

	require.NoError(t, app.Token(context.Background(), "a.b.c"))
	require.Equal(t, "a.b.c", api.token)
	require.Empty(t, app.match())
}

func TestToken_MintsWithDevSecret(t *testing.T) {
	silence(t)
	api := &fakeClient{}
	app := newTestApp(api, "")
	app.config.DevSecretKey = "dev"

	require.NoError(t, app.Token(context.Background(), "bob"))

	id, err := auth.GetUserIDFromToken(api.token, []byte("dev"))
	require.NoError(t, err)
	require.Equal(t, "bob", id)
}

func TestToken_NoSecret(t *testing.T) {
	app := newTestApp(&fakeClient{}, "")
	require.Error(t, app.Token(context.Background(), "bob"))
}

func TestRegister_PromptsForEmailAndName(t *testing.T) {
	out := silence(t)
	api := &fakeClient{profile: &rpc.Profile{ID: "alice", DisplayName: "Alice"}}
	app := newTestApp(api, "alice@example.com\nAlice\n")

	require.NoError(t, app.Register(context.Background()))
	require.Equal(t, "alice@example.com", api.lastEmail)
	require.Equal(t, "Alice", api.lastName)
	require.Contains(t, strings.Join(*out, "\n"), "Alice (alice)")
}

func TestProfile_RemembersCurrentMatch(t *testing.T) {
	silence(t)
	api := &fakeClient{profile: &rpc.Profile{ID: "alice", CurrentMatchID: "m9"}}
	app := newTestApp(api, "")

	require.NoError(t, app.Profile(context.Background()))
	require.Equal(t, "m9", app.match())
}

func TestLevel(t *testing.T) {
	silence(t)
	api := &fakeClient{profile: &rpc.Profile{ID: "alice"}}
	app := newTestApp(api, "")

	require.NoError(t, app.Level(context.Background(), "C1"))
	require.Equal(t, "C1", *api.lastLevel)
}

func TestPhoto(t *testing.T) {
	silence(t)
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	path := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	api := &fakeClient{profile: &rpc.Profile{ID: "alice", PhotoURL: "http://x"}}
	app := newTestApp(api, "")

	require.NoError(t, app.Photo(context.Background(), path))
	require.Equal(t, "image/png", api.photoCT)
	require.Equal(t, png, api.photoData)
}

func TestQueue(t *testing.T) {
	out := silence(t)
	api := &fakeClient{looking: true}
	app := newTestApp(api, "")

	require.NoError(t, app.Queue(context.Background(), true))
	require.True(t, api.lastWant)
	require.Contains(t, *out, "Looking for a partner")
}

func TestFind_InQueue(t *testing.T) {
	out := silence(t)
	app := newTestApp(&fakeClient{inQueue: true}, "")

	require.NoError(t, app.Find(context.Background()))
	require.Empty(t, app.match())
	require.Contains(t, *out, "No partner yet, you are in the queue")
}

func TestFind_Matched(t *testing.T) {
	out := silence(t)
	api := &fakeClient{
		userID:  "alice",
		matchID: "m1",
		match: &rpc.Match{
			ID:     "m1",
			Status: "active",
			Participants: []rpc.Participant{
				{UserID: "alice", DisplayName: "Alice"},
				{UserID: "bob", DisplayName: "Bob"},
			},
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
	app := newTestApp(api, "")

	require.NoError(t, app.Find(context.Background()))
	require.Equal(t, "m1", app.match())
	require.Contains(t, strings.Join(*out, "\n"), "m1 [active] with Bob")
}

func TestFind_RetryableIsNotAnError(t *testing.T) {
	out := silence(t)
	app := newTestApp(&fakeClient{reqErr: &rpc.KindError{Kind: common.KindStaleState}}, "")

	require.NoError(t, app.Find(context.Background()))
	require.Contains(t, *out, "Queue changed under us, try again")
}

func TestFind_OtherError(t *testing.T) {
	silence(t)
	app := newTestApp(&fakeClient{reqErr: &rpc.KindError{Kind: common.KindValidation, Message: "user is already in a match"}}, "")

	require.ErrorIs(t, app.Find(context.Background()), common.ErrorValidation)
}

func TestLeave(t *testing.T) {
	silence(t)
	api := &fakeClient{}
	app := newTestApp(api, "")

	require.Error(t, app.Leave(context.Background()))

	app.currentMatch = "m1"
	require.NoError(t, app.Leave(context.Background()))
	require.Equal(t, "m1", api.leftMatch)
	require.Empty(t, app.match())
}

func TestSendAndMessages(t *testing.T) {
	out := silence(t)
	api := &fakeClient{
		sent: &rpc.Message{ID: "x", IsModerated: true, ModerationReason: "bad"},
		messages: []*rpc.Message{
			{SenderDisplayName: "Bob", Text: "hi", CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		},
	}
	app := newTestApp(api, "")

	require.Error(t, app.Send(context.Background(), "hi"))

	app.currentMatch = "m1"
	require.NoError(t, app.Send(context.Background(), "hello"))
	require.Equal(t, "m1", api.sentTo)
	require.Equal(t, "hello", api.sentText)
	require.Contains(t, *out, "Flagged: bad")

	require.NoError(t, app.Messages(context.Background()))
	require.Contains(t, *out, "03:04:05 Bob: hi")
}

func TestHistory(t *testing.T) {
	out := silence(t)
	api := &fakeClient{userID: "alice"}
	app := newTestApp(api, "")

	require.NoError(t, app.History(context.Background()))
	require.Contains(t, *out, "No matches yet")

	api.matches = []*rpc.Match{{
		ID:           "m1",
		Status:       "ended",
		Participants: []rpc.Participant{{UserID: "bob", DisplayName: "Bob"}, {UserID: "alice"}},
		LastMessage:  &rpc.MessagePreview{Text: "bye"},
	}}
	require.NoError(t, app.History(context.Background()))
	require.Contains(t, (*out)[len(*out)-1], `m1 [ended] with Bob`)
	require.Contains(t, (*out)[len(*out)-1], `"bye"`)
}
