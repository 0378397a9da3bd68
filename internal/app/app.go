package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Grpc "github.com/DRSN-tech/storefront/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/infrastructure/kafka"
	"github.com/DRSN-tech/storefront/internal/infrastructure/mailer"
	"github.com/DRSN-tech/storefront/internal/infrastructure/worker"
	s3Repo "github.com/DRSN-tech/storefront/internal/repository/minio"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/repository/redis"
	redisConv "github.com/DRSN-tech/storefront/internal/repository/redis/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/clients"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout      = 10 * time.Second
	shutdownTimeout  = 10 * time.Second
	topicInitTimeout = 10 * time.Second
)

// App — собранное приложение: серверы, воркеры и ресурсы, которые нужно закрыть.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	outbox   *kafka.OutboxWorker
	consumer *kafka.Consumer
	sweeper  *worker.OrphanSweeper
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(0),
	}

	if err := a.init(); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.closer.Close(closeCtx); cerr != nil {
			logger.Warnf("cleanup after failed init: %v", cerr)
		}
		return nil, err
	}

	return a, nil
}

func (a *App) init() error {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := initPGDB(ctx, a.logger, a.cfg.Db)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddSimple("postgres", db.Close)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	trManager := manager.Must(trmpgx.NewDefaultFactory(db.Pool))

	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConv{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConv{})
	profileRepo := pgdb.NewProfileRepo(db.Pool, pgdbConv.ProfileConv{})
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConv{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConv{})
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.ProductConv{}, a.cfg.Redis, a.logger)
	cartRepo := redis.NewCartRepo(redisClient, a.cfg.Redis)
	archiveRepo := s3Repo.NewNotificationRepo(minioClient, a.cfg.Minio)

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(topicInitTimeout); err != nil {
		a.logger.Warnf("Kafka topic check failed, relying on broker auto-create: %v", err)
	}
	codec := kafka.NewProtoCodec()

	catalogUC := usecase.NewCatalogUC(productRepo, categoryRepo, cacheRepo, a.logger)
	cartUC := usecase.NewCartUC(catalogUC, cartRepo, a.logger)
	profileUC := usecase.NewProfileUC(profileRepo, a.logger)
	orderUC := usecase.NewOrderUC(
		orderRepo,
		productRepo,
		outboxRepo,
		trManager,
		codec,
		cartUC,
		profileUC,
		a.logger,
		usecase.WithOrphanPolicy(a.cfg.Workers.OrphanAge, a.cfg.Workers.OrphanBatchSize),
	)
	notificationUC := usecase.NewNotificationUC(
		profileRepo,
		mailer.New(a.cfg.Mailer, a.logger),
		archiveRepo,
		a.logger,
		a.cfg.Mailer.StoreName,
		a.cfg.Mailer.TrackURL,
	)

	a.outbox = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Workers, db.Dsn)
	a.consumer = kafka.NewConsumer(a.cfg.Kafka, codec, notificationUC, a.logger)
	a.sweeper = worker.NewOrphanSweeper(orderUC, a.cfg.Workers.OrphanInterval, a.logger)

	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)

	r := chi.NewRouter()
	v1Http.NewRouter(r, a.logger).Init(v1Http.UseCases{
		Catalog: catalogUC,
		Cart:    cartUC,
		Order:   orderUC,
		Profile: profileUC,
	}, a.cfg.Http.AdminToken)
	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

// Run запускает серверы и воркеры и блокируется до сигнала остановки или падения сервера.
func (a *App) Run() error {
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	a.outbox.Start(workersCtx)
	a.closer.AddSimple("outbox worker", a.outbox.Stop)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		a.consumer.Run(workersCtx)
	}()
	a.closer.Add("kafka consumer", func(ctx context.Context) error {
		stopWorkers()
		select {
		case <-consumerDone:
		case <-ctx.Done():
			return ctx.Err()
		}
		return a.consumer.Close()
	})

	a.sweeper.Start(workersCtx)
	a.closer.AddSimple("orphan sweeper", a.sweeper.Stop)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("gRPC server", a.grpcSrv.Stop)

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()
	a.closer.Add("HTTP server", a.httpSrv.Stop)

	a.grpcSrv.SetServing(true)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	a.grpcSrv.SetServing(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		appErr = errors.Join(appErr, err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.PGDBCfg) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, postgres.DSN(cfg))
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger, cfg.MigrationsPath); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
