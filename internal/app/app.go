package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/sarabarbaraam/CompraBarbara/internal/cfg"
	v1Http "github.com/sarabarbaraam/CompraBarbara/internal/delivery/v1/http"
	"github.com/sarabarbaraam/CompraBarbara/internal/infrastructure/kafka"
	"github.com/sarabarbaraam/CompraBarbara/internal/repository/pgdb"
	pgdbConv "github.com/sarabarbaraam/CompraBarbara/internal/repository/pgdb/converter"
	"github.com/sarabarbaraam/CompraBarbara/internal/repository/redis"
	redisConv "github.com/sarabarbaraam/CompraBarbara/internal/repository/redis/converter"
	"github.com/sarabarbaraam/CompraBarbara/internal/usecase"
	"github.com/sarabarbaraam/CompraBarbara/pkg/clients"
	"github.com/sarabarbaraam/CompraBarbara/pkg/closer"
	"github.com/sarabarbaraam/CompraBarbara/pkg/e"
	"github.com/sarabarbaraam/CompraBarbara/pkg/logger"
	"github.com/sarabarbaraam/CompraBarbara/pkg/postgres"
)

// App связывает все слои приложения: хранилища, бизнес-логику,
// HTTP-доставку и outbox-воркер.
type App struct {
	cfg          *config.Config
	logger       logger.Logger
	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	httpSrv      *v1Http.Server
	closer       *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	clientRepo := pgdb.NewClientRepo(db.Pool, pgdbConv.NewClientConverter())
	itemRepo := pgdb.NewItemRepo(db.Pool, pgdbConv.NewItemConverter())
	purchaseRepo := pgdb.NewPurchaseRepo(db.Pool, pgdbConv.NewPurchaseConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewItemConverter(), cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	clientUC := usecase.NewClientUC(clientRepo, db.Pool, log)
	itemUC := usecase.NewItemUC(itemRepo, cacheRepo, db.Pool, log)
	purchaseUC := usecase.NewPurchaseUC(
		purchaseRepo,
		clientRepo,
		itemRepo,
		outboxRepo,
		db.Pool,
		log,
		cfg.Tax.IVAPercent,
	)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(clientUC, itemUC, purchaseUC)

	return &App{
		cfg:          cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		producer:     producer,
		outboxWorker: outboxWorker,
		httpSrv:      v1Http.NewServer(r, cfg.Http),
		closer:       closer.NewCloser(2 * time.Second),
	}, nil
}

// Run запускает воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.outboxWorker.Start(workerCtx)

	// Ресурсы закрываются в порядке LIFO: сначала перестаём принимать
	// запросы, затем останавливаем воркер и рвём соединения.
	a.closer.Add(func(ctx context.Context) error {
		a.db.Close()
		return nil
	})
	a.closer.Add(func(ctx context.Context) error {
		return a.redisClient.Client.Close()
	})
	a.closer.Add(func(ctx context.Context) error {
		return a.producer.Close()
	})
	a.closer.Add(func(ctx context.Context) error {
		workerCancel()
		a.outboxWorker.Stop()
		return nil
	})
	a.closer.Add(a.httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
