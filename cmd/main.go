package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campsite-service/internal/auth"
	"campsite-service/internal/config"
	"campsite-service/internal/flash"
	"campsite-service/internal/geocode"
	"campsite-service/internal/handlers"
	"campsite-service/internal/metrics"
	"campsite-service/internal/middleware"
	"campsite-service/internal/repository"
	"campsite-service/internal/services"
	"campsite-service/internal/session"
	"campsite-service/internal/storage"
	"campsite-service/internal/utils"
)

func main() {
	// load config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	// logger
	logger, err := utils.NewLogger(dev, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)
	campgroundRepo := repository.NewMongoCampgroundRepo(db.Collection(cfg.Mongo.Campgrounds))
	reviewRepo := repository.NewMongoReviewRepo(db.Collection(cfg.Mongo.Reviews))
	userRepo := repository.NewMongoUserRepo(db.Collection(cfg.Mongo.Users))

	// Redis sessions
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatalf("redis ping: %v", err)
	}
	sessions := session.NewRedisStore(rdb, cfg.SessionTTL)
	tracker := session.NewTracker(sessions, "/login", "/", "/favicon.ico", "/healthz")
	flashCh := flash.NewChannel(sessions)

	// S3 store
	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, cfg.S3.PublicRead)
	if err != nil {
		logger.Fatalf("s3 init: %v", err)
	}

	// identity
	var verifier *auth.JWTVerifier
	if cfg.JWT.PublicKeyPath != "" {
		verifier, err = auth.NewJWTVerifier(cfg.JWT.PublicKeyPath)
		if err != nil {
			logger.Fatalf("jwt init: %v", err)
		}
	}
	broker := auth.NewBroker(sessions, verifier)

	// geocoder
	geocoder := geocode.NewClient(cfg.Geocoder.Endpoint, cfg.Geocoder.Token,
		time.Duration(cfg.Geocoder.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Geocoder.RetryMaxSeconds)*time.Second)

	// services
	campgroundSvc := services.NewCampgroundService(campgroundRepo, reviewRepo, store, logger)
	reviewSvc := services.NewReviewService(reviewRepo, campgroundRepo, logger)
	userSvc := services.NewUserService(userRepo, logger)

	// fiber app & routes
	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    64 * 1024 * 1024,
	})
	h := handlers.New(handlers.Deps{
		Campgrounds: campgroundSvc,
		Reviews:     reviewSvc,
		Users:       userSvc,
		Broker:      broker,
		Tracker:     tracker,
		Flash:       flashCh,
		Store:       store,
		Geocoder:    geocoder,
		Log:         logger,
		CookieName:  cfg.Session.CookieName,
		SessionTTL:  cfg.SessionTTL,
		PresignTTL:  time.Duration(cfg.S3.PresignTTL) * time.Second,
	})
	limiter := middleware.NewRateLimiter(rdb, "login", cfg.RateLimit.LoginLimit,
		time.Duration(cfg.RateLimit.LoginWindowSeconds)*time.Second)
	h.Register(app, limiter.MiddlewareByKey(func(c *fiber.Ctx) string { return c.IP() }))

	// metrics on a separate listener
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.MetricsPort)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		logger.Infof("metrics listening on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorf("metrics listener: %v", err)
		}
	}()

	// start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting campsite service on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")
	timeoutCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()

	_ = app.Shutdown()
	_ = rdb.Close()
	_ = mc.Disconnect(timeoutCtx)
	logger.Info("shutdown completed")
}
