package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	apihttp "localstore/internal/adapters/in/http"
	"localstore/internal/adapters/out/alarm"
	"localstore/internal/adapters/out/docstore"
	"localstore/internal/adapters/out/inmem"
	"localstore/internal/adapters/out/kafka"
	"localstore/internal/adapters/out/postgres"
	"localstore/internal/adapters/out/redis"
	"localstore/internal/core/application/fanout"
	"localstore/internal/core/application/observer"
	"localstore/internal/core/application/usecases/commands"
	"localstore/internal/core/application/usecases/queries"
	"localstore/internal/core/domain/model/kernel"
	"localstore/internal/core/ports"
	"localstore/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock

	store      ports.DocumentStore
	uowFactory ports.UnitOfWorkFactory
	journal    ports.JournalRepository
	seen       ports.SeenSet
	publisher  ports.EventPublisher
	tokens     *apihttp.TokenService

	executor *fanout.Executor
	tracker  *observer.Tracker
	watcher  *observer.Watcher

	closers []func() error
}

// NewCompositionRoot connects every adapter cfg enables. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger, clock: kernel.SystemClock{}}
	if err := c.connect(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) connect(ctx context.Context) error {
	var err error
	if c.store, err = c.newDocumentStore(); err != nil {
		return err
	}
	if err = c.newLocalPersistence(); err != nil {
		return err
	}
	if c.seen, err = c.newSeenSet(ctx); err != nil {
		return err
	}
	if c.publisher, err = c.newPublisher(); err != nil {
		return err
	}
	if c.tokens, err = apihttp.NewTokenService(c.cfg.Auth.JWTSecret, c.cfg.Auth.Issuer); err != nil {
		return err
	}

	c.executor, err = fanout.NewExecutor(c.store, c.journal, c.publisher, c.clock, fanout.Config{
		StepTimeout:     c.cfg.Fanout.StepTimeout,
		MaxRetries:      c.cfg.Fanout.MaxRetries,
		InitialInterval: c.cfg.Fanout.InitialInterval,
		MaxInterval:     c.cfg.Fanout.MaxInterval,
	}, c.logger)
	if err != nil {
		return err
	}
	if c.tracker, err = observer.NewTracker(c.seen, alarm.NewRegistry(c.logger), c.logger); err != nil {
		return err
	}
	c.watcher, err = observer.NewWatcher(
		c.tracker,
		queries.NewGetNewOrdersQueryHandler(c.store),
		queries.NewGetRecentOrdersQueryHandler(c.store, c.clock),
		c.clock,
		c.logger,
	)
	return err
}

func (c *CompositionRoot) newDocumentStore() (ports.DocumentStore, error) {
	if c.cfg.Store.Backend == "memory" {
		m := docstore.NewMemory()
		if c.cfg.Store.SeedFile != "" {
			data, err := os.ReadFile(c.cfg.Store.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("read store seed: %w", err)
			}
			if err = m.Load(data); err != nil {
				return nil, fmt.Errorf("load store seed: %w", err)
			}
		}
		c.logger.Warn("Using the in-memory document store")
		return m, nil
	}
	return docstore.NewRESTStore(docstore.Config{
		BaseURL:   c.cfg.Store.URL,
		AuthToken: c.cfg.Store.AuthToken,
		Timeout:   c.cfg.Store.Timeout,
	}, c.logger)
}

func (c *CompositionRoot) newLocalPersistence() error {
	if c.cfg.DB.Host == "" {
		journal, sessions := inmem.NewJournalRepository(), inmem.NewSessionRepository()
		c.journal = journal
		c.uowFactory = inmem.NewUnitOfWorkFactory(journal, sessions)
		return nil
	}

	db, err := gorm.Open(gormpostgres.Open(c.cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	c.closers = append(c.closers, sqlDB.Close)
	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	factory := postgres.NewGormUnitOfWorkFactory(db)
	c.uowFactory = factory
	// The executor journals outside any transaction.
	c.journal = factory.Create().JournalRepository()
	return nil
}

func (c *CompositionRoot) newSeenSet(ctx context.Context) (ports.SeenSet, error) {
	if c.cfg.Redis.Addr == "" {
		return inmem.NewSeenSet(), nil
	}
	client, err := redis.NewClient(ctx, c.cfg.Redis.Addr, c.cfg.Redis.Password, c.cfg.Redis.DB)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, client.Close)
	return redis.NewSeenSet(client, c.cfg.Redis.Prefix, c.cfg.Redis.SeenTTL)
}

func (c *CompositionRoot) newPublisher() (ports.EventPublisher, error) {
	if len(c.cfg.Kafka.Brokers) == 0 {
		return kafka.NoopPublisher{}, nil
	}
	producer, err := kafka.NewSyncProducer(c.cfg.Kafka.Brokers, c.cfg.Kafka.ClientID)
	if err != nil {
		return nil, err
	}
	publisher, err := kafka.NewPublisher(producer, c.cfg.Kafka.Topic, c.logger)
	if err != nil {
		_ = producer.Close()
		return nil, err
	}
	c.closers = append(c.closers, publisher.Close)
	return publisher, nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.store, c.sessionUoWFactory(), c.tokens, c.clock, c.cfg.Auth.SessionTTL)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateExpireSessionsCommandHandler() commands.ExpireSessionsCommandHandler {
	return commands.NewExpireSessionsCommandHandler(c.sessionUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.store, c.executor, c.tracker, c.clock)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.store, c.executor, c.tracker, c.clock)
}

func (c *CompositionRoot) CreateCompletePickupCommandHandler() commands.CompletePickupCommandHandler {
	return commands.NewCompletePickupCommandHandler(c.store, c.executor, c.clock, commands.PickupPolicy{
		RequireAllStores: c.cfg.PickupRequiresAllStores,
	})
}

func (c *CompositionRoot) CreateHandlers() apihttp.Handlers {
	return apihttp.Handlers{
		Login:           c.CreateLoginCommandHandler(),
		Logout:          c.CreateLogoutCommandHandler(),
		SetAvailability: commands.NewSetAvailabilityCommandHandler(c.executor, c.clock),
		Release:         commands.NewReleasePartnerCommandHandler(c.executor, c.clock),
		Accept:          c.CreateAcceptOrderCommandHandler(),
		Reject:          c.CreateRejectOrderCommandHandler(),
		CompletePickup:  c.CreateCompletePickupCommandHandler(),
		StartDelivery:   commands.NewStartDeliveryCommandHandler(c.store, c.executor),
		FinishDelivery:  commands.NewFinishDeliveryCommandHandler(c.store, c.executor),

		NewOrders:    queries.NewGetNewOrdersQueryHandler(c.store),
		RecentOrders: queries.NewGetRecentOrdersQueryHandler(c.store, c.clock),
		PartnerOrder: queries.NewGetPartnerOrderQueryHandler(c.store),
		Profile:      queries.NewGetPartnerProfileQueryHandler(c.store),
		Analytics:    queries.NewGetPartnerAnalyticsQueryHandler(c.store),
		PickupStatus: queries.NewGetPickupStatusQueryHandler(c.store),
		StoreOrders:  queries.NewGetStoreOrdersQueryHandler(c.store, c.clock),
		StoreArchive: queries.NewGetStoreArchiveQueryHandler(c.store),
		Runs:         queries.NewGetTransitionRunsQueryHandler(c.journal),
	}
}

func (c *CompositionRoot) CreateRouter() *echo.Echo {
	server := apihttp.NewServer(c.CreateHandlers(), c.watcher, c.tracker)
	return apihttp.NewRouter(server, apihttp.RouterConfig{
		Tokens: c.tokens,
		Sessions: func() ports.SessionRepository {
			return c.uowFactory.Create().SessionRepository()
		},
		Clock:    c.clock,
		Logger:   c.logger,
		LogLevel: echoLogLevel(c.cfg.LogLevel),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.watcher, c.CreateExpireSessionsCommandHandler(), jobs.Schedules{
		NewOrders:     c.cfg.Jobs.NewOrders,
		RecentOrders:  c.cfg.Jobs.RecentOrders,
		SessionExpiry: c.cfg.Jobs.SessionExpiry,
	}, c.logger)
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}
