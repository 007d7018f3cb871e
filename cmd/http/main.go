package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaelleal24/stock-control/internal/adapters/config"
	"github.com/rafaelleal24/stock-control/internal/adapters/filestore"
	"github.com/rafaelleal24/stock-control/internal/adapters/http"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stock-control/internal/adapters/http/middleware"
	"github.com/rafaelleal24/stock-control/internal/adapters/memory"
	"github.com/rafaelleal24/stock-control/internal/adapters/mongo"
	"github.com/rafaelleal24/stock-control/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/stock-control/internal/adapters/outbox"
	"github.com/rafaelleal24/stock-control/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/stock-control/internal/adapters/redis"
	"github.com/rafaelleal24/stock-control/internal/adapters/remote"
	"github.com/rafaelleal24/stock-control/internal/core/domain"
	"github.com/rafaelleal24/stock-control/internal/core/logger"
	"github.com/rafaelleal24/stock-control/internal/core/port"
	"github.com/rafaelleal24/stock-control/internal/core/service"
	"github.com/rafaelleal24/stock-control/internal/core/storage"
)

// @title       Stock Control API
// @version     1.0
// @description Inventory stock ledger API

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		IsProduction:      cfg.Logger.IsProduction,
		Level:             cfg.Logger.Level,
		Console:           cfg.Logger.Console,
	}); err != nil {
		// logger not available yet, fall back to stdout
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancelled on SIGINT/SIGTERM, stops the server and background goroutines
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		checkers    []controllers.HealthChecker
		redisClient *redis.Client
		rateLimiter middleware.RateLimiter
		idempotency *service.IdempotencyService[domain.Movement]
	)

	// redis is optional: idempotency keys and rate limiting need it
	if cfg.Redis.Enabled() {
		client, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			fatal(ctx, "Failed to connect to Redis", err)
		}
		defer client.Close()
		redisClient = client
		rateLimiter = redis.NewRateLimiter(client)
		idempotency = service.NewIdempotencyService[domain.Movement](
			redis.NewCache[service.IdempotencyEntry[domain.Movement]](client, "idempotency"),
			service.IdempotencyOptions{
				TTL:          cfg.Idempotency.TTL,
				PollInterval: cfg.Idempotency.PollInterval,
				PollTimeout:  cfg.Idempotency.PollTimeout,
			},
		)
		checkers = append(checkers, controllers.HealthChecker{Name: "redis", Check: client.Ping})
		logger.Info(ctx, "Connected to Redis", nil)
	}

	// data source: remote API when configured, local ledger otherwise
	var (
		source port.InventorySource
		mode   = "remote"
	)
	if cfg.API.RemoteMode() {
		source = remote.NewSource(cfg.API)
		logger.Info(ctx, "Using remote inventory API", map[string]any{"base_url": cfg.API.BaseURL})
	} else {
		mode = "local"
		kv, closeKV, err := openKVStore(cfg, redisClient)
		if err != nil {
			fatal(ctx, "Failed to open store", err)
		}
		defer closeKV()

		store := storage.New(kv, cfg.Store.Prefix)
		ledger := service.NewLedger(store, service.LedgerOptions{
			SeedDefaults: cfg.Store.SeedDefaults,
			Events:       cfg.RabbitMQ.Enabled(),
			StrictWrites: cfg.Store.StrictWrites,
		})
		source = service.NewLocalSource(ledger, cfg.Store.Latency)
		checkers = append(checkers, controllers.HealthChecker{Name: "store", Check: func(ctx context.Context) error {
			_, _, err := kv.Get(ctx, store.Key(storage.KeyProducts))
			return err
		}})
		logger.Info(ctx, "Using local ledger", map[string]any{
			"driver": cfg.Store.Driver,
			"prefix": cfg.Store.Prefix,
			"strict": cfg.Store.StrictWrites,
		})

		// rabbitmq is optional: staged events stay in the outbox until relayed
		if cfg.RabbitMQ.Enabled() {
			broker, err := rabbitmq.NewBroker(cfg.RabbitMQ)
			if err != nil {
				fatal(ctx, "Failed to connect to RabbitMQ", err)
			}
			defer broker.Close()
			checkers = append(checkers, controllers.HealthChecker{Name: "rabbitmq", Check: func(context.Context) error { return broker.HealthCheck() }})

			outboxHandler := outbox.NewHandler(outbox.NewStoreRepository(store), broker, cfg.Outbox)
			go outboxHandler.Start(ctx)
		}
	}

	// services and controllers
	inventoryService := service.NewInventoryService(source, idempotency)
	router := http.NewRouter(
		controllers.NewHealthController(mode, checkers),
		controllers.NewProductController(inventoryService),
		controllers.NewMovementController(inventoryService),
		controllers.NewDashboardController(inventoryService),
		rateLimiter,
		cfg.RateLimit,
	)

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port, "mode": mode})
	if err := router.ListenAndServe(ctx, cfg.HTTP); err != nil {
		fatal(ctx, "Failed to start HTTP server", err)
	}
	logger.Info(ctx, "HTTP server stopped", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Println("logger shutdown error: " + err.Error())
	}
}

// openKVStore returns the key value medium selected by STORE_DRIVER and a
// func releasing it.
func openKVStore(cfg *config.Config, redisClient *redis.Client) (port.KVStore, func(), error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return memory.NewKV(), noop, nil
	case config.StoreDriverRedis:
		if redisClient == nil {
			return nil, noop, fmt.Errorf("store driver %q requires REDIS_URL", cfg.Store.Driver)
		}
		return redis.NewKV(redisClient), noop, nil
	case config.StoreDriverMongo:
		conn, err := mongo.NewConnection(cfg.Mongo)
		if err != nil {
			return nil, noop, err
		}
		kv := repository.NewKVRepository(conn.Database, mongo.NewTransactionManager(conn.Client))
		return kv, func() { _ = conn.Close() }, nil
	case config.StoreDriverFile, "":
		kv, err := filestore.New(cfg.Store.Path)
		return kv, noop, err
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func fatal(ctx context.Context, message string, err error) {
	logger.Error(ctx, message, err, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(shutdownCtx)
	os.Exit(1)
}
