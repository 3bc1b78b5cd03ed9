package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	mongoadapter "github.com/vietlinker/listing-service/internal/adapter/mongo"
	natsadapter "github.com/vietlinker/listing-service/internal/adapter/nats"
	redisadapter "github.com/vietlinker/listing-service/internal/adapter/redis"
	minioadapter "github.com/vietlinker/listing-service/internal/adapter/storage/minio"
	"github.com/vietlinker/listing-service/internal/app/config"
	"github.com/vietlinker/listing-service/internal/platform/logger"
	httpserver "github.com/vietlinker/listing-service/internal/port/http"
	"github.com/vietlinker/listing-service/internal/port/http/handler"
	"github.com/vietlinker/listing-service/internal/port/http/router"
	"github.com/vietlinker/listing-service/internal/pricing"
	"github.com/vietlinker/listing-service/internal/usecase"
)

type App struct {
	cfg         *config.Config
	log         *zap.Logger
	server      *httpserver.Server
	mongoClient *mongo.Client
	redisClient *redis.Client
	natsConn    *nats.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded", zap.String("env", cfg.Env), zap.String("http_port", cfg.HTTPServer.Port))

	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	log.Info("MongoDB client initialized")

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	log.Info("Redis client initialized")

	natsConn, err := natsadapter.NewConnection(cfg.NATS)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("NATS connection established")

	publisher, err := natsadapter.NewListingEventPublisher(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	photoStorage, err := minioadapter.NewPhotoMinioStorage(ctx, cfg.Minio, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	listingRepo := mongoadapter.NewListingMongoRepository(mongoClient, cfg.MongoDB.Database)
	favoriteRepo, err := mongoadapter.NewFavoriteMongoRepository(ctx, mongoClient, cfg.MongoDB.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize favorite repository: %w", err)
	}
	cacheRepo := redisadapter.NewCacheRedisRepository(redisClient)

	listingUC := usecase.NewListingUseCase(listingRepo, cacheRepo, publisher, cfg.ListingCache.TTL, log)
	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, listingRepo, log)
	photoUC := usecase.NewPhotoUseCase(listingRepo, photoStorage, log)
	creditUC := usecase.NewCreditUseCase(pricing.NewEngine(pricing.DefaultCatalog()), log)

	listingHandler := handler.NewListingHandler(listingUC, photoUC, log)
	creditHandler := handler.NewCreditHandler(creditUC, cfg.Payments.WebhookSecret, log)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUC, log)

	mux := router.New(listingHandler, creditHandler, favoriteHandler, cfg.JWT.Secret, log)
	server := httpserver.NewServer(cfg.HTTPServer, mux, log)

	return &App{
		cfg:         cfg,
		log:         log,
		server:      server,
		mongoClient: mongoClient,
		redisClient: redisClient,
		natsConn:    natsConn,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains connections and closes the clients.
func (a *App) Run() {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Info("Received shutdown signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Error("Error during HTTP server shutdown", zap.Error(err))
	}

	if a.natsConn != nil {
		a.natsConn.Close()
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.log.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis client", zap.Error(err))
		}
	}

	a.log.Info("Application shut down")
	_ = a.log.Sync()
}
