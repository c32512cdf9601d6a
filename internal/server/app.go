// Package server wires the langmatch server together: storage, services,
// event publishing, the gRPC endpoint and the metrics endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/langmatch/internal/idgen"
	"github.com/dmitrijs2005/langmatch/internal/logging"
	"github.com/dmitrijs2005/langmatch/internal/server/config"
	"github.com/dmitrijs2005/langmatch/internal/server/events"
	"github.com/dmitrijs2005/langmatch/internal/server/metrics"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/langmatch/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/langmatch/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/langmatch/internal/server/grpc"
)

var openDB = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }

type App struct {
	config    *config.Config
	logger    logging.Logger
	repos     repomanager.RepositoryManager
	db        *sql.DB
	publisher events.Publisher
	closePub  func() error
	server    *gs.GRPCServer
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)
	app := &App{config: c, logger: logger, publisher: events.Nop{}}

	if err := app.initStorage(context.Background()); err != nil {
		return nil, err
	}

	if c.NATSURL != "" {
		p, err := events.Connect(c.NATSURL)
		if err != nil {
			app.close()
			return nil, err
		}
		app.publisher = p
		app.closePub = p.Close
	}

	ids, err := idgen.NewNanoID(idgen.MatchIDLength)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("id generator: %w", err)
	}

	mm := services.NewMatchmakingService(app.repos, c, ids, app.publisher, logger)
	chat := services.NewChatService(app.repos, c, idgen.UUID{}, app.publisher, logger)
	profiles := services.NewProfileService(app.repos, c, logger)

	app.server, err = gs.NewGRPCServer(c.EndpointAddrGRPC, logger, mm, chat, profiles, gs.Options{
		SecretKey:      c.SecretKey,
		RateLimitRPS:   c.RateLimitRPS,
		RateLimitBurst: c.RateLimitBurst,
	})
	if err != nil {
		app.close()
		return nil, err
	}

	return app, nil
}

func (app *App) initStorage(ctx context.Context) error {
	switch app.config.StorageKind {
	case config.StorageMemory:
		app.logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		app.repos = memstore.New()
		return nil

	case config.StoragePostgres:
		db, err := openDB(app.config.DatabaseDSN)
		if err != nil {
			return fmt.Errorf("db init error: %w", err)
		}
		rm, err := repomanager.NewPostgresRepositoryManager(db)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("db init error: %w", err)
		}
		if err := rm.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("migrations: %w", err)
		}
		app.db = db
		app.repos = rm
		return nil

	default:
		return fmt.Errorf("unknown storage kind %q", app.config.StorageKind)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is canceled, a signal arrives or an endpoint fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageKind)

	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.server.Run(ctx)
	})

	if app.config.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(ctx, app.config.MetricsAddr)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "app stopped", "error", err)
	}
	return err
}

func (app *App) close() {
	if app.closePub != nil {
		if err := app.closePub(); err != nil {
			app.logger.Warn(context.Background(), "closing nats", "error", err)
		}
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}
