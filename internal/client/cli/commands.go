package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
	"github.com/dmitrijs2005/langmatch/internal/filex"
	"github.com/dmitrijs2005/langmatch/internal/rpc"
	"github.com/dmitrijs2005/langmatch/internal/server/auth"
)

// getSimpleText is swapped in tests.
var getSimpleText = GetSimpleText

const (
	devTokenValidity = 24 * time.Hour
	maxPhotoSize     = 5 << 20
	historyLimit     = 20
	messagesLimit    = 50
)

func (a *App) match() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentMatch
}

func (a *App) setMatch(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.currentMatch = id
}

// Token accepts either a signed access token or, when a development secret is
// configured, a bare user id to mint one for.
func (a *App) Token(ctx context.Context, arg string) error {
	token := arg
	if strings.Count(arg, ".") != 2 {
		if a.config.DevSecretKey == "" {
			return errors.New("not a token and no dev secret configured")
		}
		t, err := auth.GenerateToken(arg, []byte(a.config.DevSecretKey), devTokenValidity)
		if err != nil {
			return err
		}
		token = t
	}

	if err := a.api.SetToken(token); err != nil {
		return err
	}
	a.setMatch("")
	printlnFn("Using identity", a.api.UserID())
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter display name (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.api.CreateProfile(ctx, email, name)
	if err != nil {
		return err
	}
	printProfile(p)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}
	a.setMatch(p.CurrentMatchID)
	printProfile(p)
	return nil
}

func (a *App) Level(ctx context.Context, level string) error {
	p, err := a.api.UpdateProfile(ctx, nil, nil, &level)
	if err != nil {
		return err
	}
	printProfile(p)
	return nil
}

func (a *App) Photo(ctx context.Context, path string) error {
	contentType, data, err := filex.ReadImage(path, maxPhotoSize)
	if err != nil {
		return err
	}
	p, err := a.api.UploadPhoto(ctx, contentType, data)
	if err != nil {
		return err
	}
	printlnFn("Photo:", p.PhotoURL)
	return nil
}

func (a *App) Queue(ctx context.Context, want bool) error {
	looking, err := a.api.ToggleQueue(ctx, want)
	if err != nil {
		return err
	}
	if looking {
		printlnFn("Looking for a partner")
	} else {
		printlnFn("Not in the queue")
	}
	return nil
}

func (a *App) Find(ctx context.Context) error {
	id, inQueue, err := a.api.RequestMatch(ctx)
	if err != nil {
		if common.KindOf(err).Retryable() {
			printlnFn("Queue changed under us, try again")
			return nil
		}
		return err
	}
	if inQueue {
		printlnFn("No partner yet, you are in the queue")
		return nil
	}

	a.setMatch(id)
	m, err := a.api.GetMatch(ctx, id)
	if err != nil {
		printlnFn("Matched:", id)
		return nil
	}
	printMatch(m, a.api.UserID())
	return nil
}

func (a *App) Leave(ctx context.Context) error {
	id := a.match()
	if id == "" {
		return errors.New("not in a match")
	}
	if err := a.api.LeaveMatch(ctx, id); err != nil {
		return err
	}
	a.setMatch("")
	printlnFn("Left", id)
	return nil
}

func (a *App) Send(ctx context.Context, text string) error {
	id := a.match()
	if id == "" {
		return errors.New("not in a match")
	}
	m, err := a.api.SendMessage(ctx, id, text)
	if err != nil {
		return err
	}
	if m.IsModerated {
		printlnFn("Flagged:", m.ModerationReason)
	}
	return nil
}

func (a *App) Messages(ctx context.Context) error {
	id := a.match()
	if id == "" {
		return errors.New("not in a match")
	}
	ms, err := a.api.ListMessages(ctx, id, messagesLimit)
	if err != nil {
		return err
	}
	for _, m := range ms {
		flag := ""
		if m.IsModerated {
			flag = " [flagged]"
		}
		printlnFn(fmt.Sprintf("%s %s: %s%s", m.CreatedAt.Format(time.TimeOnly), m.SenderDisplayName, m.Text, flag))
	}
	return nil
}

func (a *App) History(ctx context.Context) error {
	ms, err := a.api.ListMatches(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		printlnFn("No matches yet")
		return nil
	}
	for _, m := range ms {
		printMatch(m, a.api.UserID())
	}
	return nil
}

func printProfile(p *rpc.Profile) {
	level := p.ProficiencyLevel
	if level == "" {
		level = "-"
	}
	printlnFn(fmt.Sprintf("%s (%s) level=%s looking=%t match=%s", p.DisplayName, p.ID, level, p.IsLookingForMatch, p.CurrentMatchID))
}

func printMatch(m *rpc.Match, me string) {
	partner := "?"
	for _, p := range m.Participants {
		if p.UserID != me {
			partner = p.DisplayName
		}
	}
	line := fmt.Sprintf("%s [%s] with %s since %s", m.ID, m.Status, partner, m.CreatedAt.Format(time.DateTime))
	if m.LastMessage != nil {
		line += fmt.Sprintf(": %q", m.LastMessage.Text)
	}
	printlnFn(line)
}
