package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/client/client"
	"github.com/dmitrijs2005/langmatch/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader

	mu           sync.Mutex
	Mode         Mode
	currentMatch string
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewLangmatchClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	if c.AccessToken != "" {
		if err := apiClient.SetToken(c.AccessToken); err != nil {
			log.Printf("ignoring configured access token: %s", err.Error())
		}
	}

	return &App{config: c, api: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.UserID() != ""
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
