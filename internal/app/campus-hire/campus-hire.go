package campushire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/AMULYA007-hub/campus-hire/internal/cache"
	"github.com/AMULYA007-hub/campus-hire/internal/config"
	"github.com/AMULYA007-hub/campus-hire/internal/durable"
	"github.com/AMULYA007-hub/campus-hire/internal/events"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/jwt"
	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/migrations"
	"github.com/AMULYA007-hub/campus-hire/internal/rabbitmq"
	"github.com/AMULYA007-hub/campus-hire/internal/services/activity"
	authservice "github.com/AMULYA007-hub/campus-hire/internal/services/auth"
	"github.com/AMULYA007-hub/campus-hire/internal/services/board"
	"github.com/AMULYA007-hub/campus-hire/internal/sessions"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/identity"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/memory"
	"github.com/AMULYA007-hub/campus-hire/internal/storage/postgresql"
)

// registrarPrefix namespaces the shared auth service that serves registrations.
const registrarPrefix = "anon:"

type App struct {
	server   *http.Server
	logger   *slog.Logger
	registry *sessions.Registry
	sweep    time.Duration
	closers  []func() error
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		logger: logger,
		sweep:  cfg.SweepInterval,
	}

	store, err := a.openDurable(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	repo, accounts, err := a.openStorage(ctx, cfg, store)
	if err != nil {
		a.close()
		return nil, err
	}

	publisher, err := a.openEvents(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	boardService := board.New(logger, repo, publisher, board.WithLatency(cfg.StoreLatency))
	feed := activity.New(cfg.ActivityCapacity)
	a.registry = sessions.New(logger, accounts, store, cfg.InactivityTimeout,
		authservice.WithLatency(cfg.AuthLatency),
	)
	registrar := authservice.New(ctx, logger, accounts, durable.Prefixed(store, registrarPrefix),
		authservice.WithLatency(cfg.AuthLatency),
		authservice.WithRegisteredHook(boardService.LinkAccount),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Board:     boardService,
		Registry:  a.registry,
		Registrar: registrar,
		Activity:  feed,
		Tokens:    jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		RateLimit: cfg.RateLimit,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

func (a *App) openDurable(ctx context.Context, cfg *config.Config) (durable.Store, error) {
	const op = "campushire.openDurable"

	var store durable.Store
	switch cfg.DurableDriver {
	case "file":
		f, err := durable.NewFile(cfg.DurablePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		store = f
	case "redis":
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, c.Close)
		store = c
	default:
		store = durable.NewMemory()
	}
	a.logger.Info("durable store ready", slog.String("driver", cfg.DurableDriver))
	return durable.Prefixed(store, cfg.KeyPrefix), nil
}

// openStorage returns the data store and the identity store. The memory
// driver keeps accounts in the durable store, postgres keeps both in the database.
func (a *App) openStorage(ctx context.Context, cfg *config.Config, store durable.Store) (board.Repository, authservice.AccountStore, error) {
	const op = "campushire.openStorage"

	if cfg.StorageDriver == "postgres" {
		db, err := postgresql.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, db.Close)
		if err := migrations.Run(db.DB); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		a.logger.Info("postgres storage ready")
		return db, db, nil
	}

	var opts []memory.Option
	if cfg.SeedDemoData {
		opts = append(opts, memory.WithSeed(memory.DemoSeed()))
	}
	accounts, err := identity.Open(ctx, store)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	a.logger.Info("memory storage ready",
		slog.Bool("seeded", cfg.SeedDemoData),
		slog.Int("accounts", accounts.Len()),
	)
	return memory.New(opts...), accounts, nil
}

func (a *App) openEvents(ctx context.Context, cfg *config.Config) (events.Publisher, error) {
	const op = "campushire.openEvents"

	if cfg.RabbitURL == "" {
		a.logger.Info("notifications disabled")
		return events.Nop{}, nil
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, conn.Close)

	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.QueuesFor(cfg.Exchange, events.Keys()...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, ch.Close)

	a.logger.Info("notifications enabled", slog.String("exchange", cfg.Exchange))
	return events.NewAMQP(a.logger, ch, cfg.Exchange), nil
}

func (a *App) Run(ctx context.Context) error {
	go a.registry.Run(ctx, a.sweep)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

// close releases resources in reverse order of acquisition.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", sl.Err(err))
		}
	}
	a.closers = nil
}
