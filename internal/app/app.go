// Package app composes the ledger's adapters and use cases from config.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpadapter "github.com/iho/bankledger/internal/adapter/http"
	"github.com/iho/bankledger/internal/adapter/http/handler"
	"github.com/iho/bankledger/internal/adapter/http/middleware"
	"github.com/iho/bankledger/internal/adapter/printer"
	"github.com/iho/bankledger/internal/adapter/repository/memory"
	pgrepo "github.com/iho/bankledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/bankledger/internal/adapter/repository/redis"
	"github.com/iho/bankledger/internal/domain"
	"github.com/iho/bankledger/internal/infrastructure/auth"
	"github.com/iho/bankledger/internal/infrastructure/config"
	"github.com/iho/bankledger/internal/infrastructure/eventpublisher"
	"github.com/iho/bankledger/internal/infrastructure/idgen"
	"github.com/iho/bankledger/internal/infrastructure/metrics"
	"github.com/iho/bankledger/internal/infrastructure/postgres"
	"github.com/iho/bankledger/internal/usecase"
)

// rateLimitIdle is how long a client may stay quiet before its limiter is dropped.
const rateLimitIdle = 10 * time.Minute

// Options overrides collaborators that tests and tools want to control.
type Options struct {
	Clock    domain.Clock
	IDs      domain.IDGenerator
	Printer  domain.StatementPrinter
	Registry *prometheus.Registry
}

// App holds every wired component of a running ledger.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Clock  domain.Clock

	Accounts   *usecase.AccountUseCase
	Statements *usecase.StatementUseCase
	Auth       *usecase.AuthUseCase
	Ledger     *usecase.LedgerUseCase
	Outbox     usecase.OutboxRepository
	Tokens     *auth.JWTManager
	Metrics    *metrics.Metrics

	registry    *prometheus.Registry
	pool        *pgxpool.Pool
	redisClient *goredis.Client
	idempotency usecase.IdempotencyStore
	rateLimiter *middleware.RateLimiter
}

// storage is the set of ports one backend provides.
type storage struct {
	tx       usecase.TransactionManager
	accounts usecase.AccountRepository
	queries  usecase.AccountQueries
	ledger   usecase.LedgerRepository
	users    usecase.UserRepository
	outbox   usecase.OutboxRepository
}

// New connects the configured backends and builds the use cases.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = domain.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = idgen.NewULIDGenerator()
	}
	if opts.Printer == nil {
		opts.Printer = printer.NewConsole(os.Stdout)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Clock:    opts.Clock,
		registry: opts.Registry,
		Metrics:  metrics.NewWithRegisterer(opts.Registry),
		Tokens:   auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration),
	}

	env := domain.AccountEnv{Clock: opts.Clock, IDs: opts.IDs, Printer: opts.Printer}

	st, err := a.openStorage(ctx, env)
	if err != nil {
		a.Close()
		return nil, err
	}

	var cache usecase.Cache
	if cfg.RedisURL != "" {
		client, err := redisrepo.Connect(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redisClient = client
		cache = redisrepo.NewCache(client)
		a.idempotency = redisrepo.NewIdempotencyStore(client)
		logger.Info().Msg("connected to redis")
	}

	if cfg.RateLimitRPS > 0 {
		a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	var outbox usecase.OutboxRepository
	if cfg.OutboxEnabled {
		outbox = st.outbox
	}
	a.Outbox = outbox

	a.Accounts = usecase.NewAccountUseCase(usecase.AccountUseCaseConfig{
		TxManager: st.tx,
		Accounts:  st.accounts,
		Queries:   st.queries,
		Outbox:    outbox,
		Retrier:   pgrepo.NewRetrier(cfg.SaveMaxRetries, logger),
		Cache:     cache,
		CacheTTL:  cfg.BalanceCacheTTL,
		Recorder:  a.Metrics,
		Env:       env,
	})
	a.Statements = usecase.NewStatementUseCase(st.accounts, st.queries)
	a.Auth = usecase.NewAuthUseCase(st.users, a.Tokens, opts.IDs, opts.Clock)
	a.Ledger = usecase.NewLedgerUseCase(st.ledger)

	return a, nil
}

func (a *App) openStorage(ctx context.Context, env domain.AccountEnv) (storage, error) {
	cfg := a.Config

	switch cfg.Storage {
	case config.StorageMemory:
		store := memory.NewStore(env)
		a.Logger.Info().Msg("using in-memory storage")
		return storage{
			tx:       store,
			accounts: store,
			queries:  store,
			ledger:   store,
			users:    store,
			outbox:   store.Outbox(),
		}, nil

	case config.StoragePostgres:
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, a.Logger).Up(); err != nil {
			return storage{}, err
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return storage{}, err
		}
		a.pool = pool
		a.Logger.Info().Msg("connected to postgres")

		return storage{
			tx:       pgrepo.NewTxManager(pool),
			accounts: pgrepo.NewAccountRepository(pool, env),
			queries:  pgrepo.NewQueryRepository(pool, env.Clock),
			ledger:   pgrepo.NewLedgerRepository(pool),
			users:    pgrepo.NewUserRepository(pool),
			outbox:   pgrepo.NewOutboxRepository(pool),
		}, nil
	}

	return storage{}, fmt.Errorf("app: unknown storage %q", cfg.Storage)
}

// Router builds the HTTP API.
func (a *App) Router() http.Handler {
	var db handler.Pinger
	if a.pool != nil {
		db = a.pool
	}

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(a.Accounts),
		StatementHandler: handler.NewStatementHandler(a.Statements),
		AuthHandler:      handler.NewAuthHandler(a.Auth),
		LedgerHandler:    handler.NewLedgerHandler(a.Ledger, a.Accounts),
		HealthHandler:    handler.NewHealthHandler(db, a.redisClient),
		TokenVerifier:    a.Tokens,
		IdempotencyStore: a.idempotency,
		IdempotencyTTL:   a.Config.IdempotencyTTL,
		RateLimiter:      a.rateLimiter,
		MetricsHandler:   promhttp.HandlerFor(prometheus.Gatherers{prometheus.DefaultGatherer, a.registry}, promhttp.HandlerOpts{}),
		CORSOrigins:      a.Config.CORSOrigins,
		Logger:           a.Logger,
	})
}

// RunBackground starts the outbox publisher and limiter eviction. They
// stop when ctx is cancelled.
func (a *App) RunBackground(ctx context.Context) {
	if a.rateLimiter != nil {
		go a.rateLimiter.RunEviction(ctx, time.Minute, rateLimitIdle)
	}

	if a.Outbox != nil {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: a.Outbox,
			Publisher:  eventpublisher.NewLogPublisher(a.Logger),
			Recorder:   a.Metrics,
			Clock:      a.Clock,
			Logger:     a.Logger,
			BatchSize:  a.Config.OutboxBatchSize,
			Interval:   a.Config.OutboxPollInterval,
		})
		go func() {
			_ = publisher.Start(ctx)
		}()
	}
}

// Close releases the backend connections.
func (a *App) Close() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
