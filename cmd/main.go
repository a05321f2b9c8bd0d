package main

import (
	"context"
	"errors"
	"fmt"
	"log" // early errors happen before zap is built
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fathima-sithara/uriel-service/internal/api"
	"github.com/fathima-sithara/uriel-service/internal/config"
	"github.com/fathima-sithara/uriel-service/internal/database"
	"github.com/fathima-sithara/uriel-service/internal/events"
	"github.com/fathima-sithara/uriel-service/internal/handlers"
	"github.com/fathima-sithara/uriel-service/internal/metrics"
	"github.com/fathima-sithara/uriel-service/internal/middleware"
	"github.com/fathima-sithara/uriel-service/internal/repository"
	service "github.com/fathima-sithara/uriel-service/internal/services"
	"github.com/fathima-sithara/uriel-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sugar, err := utils.NewLogger(cfg.Development(), cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()
	sugar.Infof("Starting uriel-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	m := metrics.New(prometheus.NewRegistry())

	// The API still serves diagnostics without a store, so a missing or invalid
	// configuration leaves store nil instead of exiting.
	var (
		store       repository.Store
		mongoClient *mongo.Client
	)
	switch cfg.Mongo.Driver {
	case config.DriverMemory:
		sugar.Warn("Using in-memory store; data is lost on restart")
		store = repository.NewMemoryRepo(cfg.Mongo.Collection)
	default:
		db, client, err := database.ConnectMongo(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database, cfg.ConnectTimeout, sugar)
		switch {
		case err == nil, errors.Is(err, database.ErrUnreachable):
			// an unreachable server recovers on its own; /test reports live reachability
			mongoClient = client
			store = repository.NewMediaRepo(db, cfg.Mongo.Collection, sugar)
		default:
			sugar.Errorw("MongoDB unavailable, media endpoints will fail", "error", err)
		}
	}

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		sugar.Infow("Kafka publisher configured", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		sugar.Warn("Kafka not configured. Download events will be skipped.")
	}

	var (
		rdb             *redis.Client
		downloadLimiter fiber.Handler
	)
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Warnw("Redis unavailable, download rate limiting disabled", "error", err)
		} else {
			rl := middleware.NewRateLimiter(rdb, "rl:download", cfg.RateLimit.DownloadsPerMinute, time.Minute, sugar)
			downloadLimiter = rl.MiddlewareByKey(middleware.ByIP)
		}
	}

	mediaSvc := service.NewMediaService(store, pub, m, sugar, service.Options{
		MaxTopLimit: cfg.Top.MaxLimit,
		OpTimeout:   cfg.OpTimeout,
	})
	healthSvc := service.NewHealthService(store, cfg.Mongo.URI != "", cfg.Mongo.Database != "")
	h := handlers.NewHandler(mediaSvc, healthSvc, sugar)

	app := api.NewServer(api.Deps{
		Handler:         h,
		Metrics:         m,
		Logger:          sugar,
		DownloadLimiter: downloadLimiter,
	})

	go func() {
		listenAddr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := app.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	mediaSvc.Wait()
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctxShut); err != nil {
			sugar.Errorf("MongoDB disconnect error: %v", err)
		}
	}
	if err := pub.Close(); err != nil {
		sugar.Errorf("Kafka writer close error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}

	sugar.Info("Graceful shutdown complete")
}
