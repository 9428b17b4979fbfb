package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/carcare-storefront/internal/config"
	"github.com/flicky/carcare-storefront/internal/events"
	"github.com/flicky/carcare-storefront/internal/handler"
	"github.com/flicky/carcare-storefront/internal/ratelimit"
	"github.com/flicky/carcare-storefront/internal/repository"
	"github.com/flicky/carcare-storefront/internal/service"
	"github.com/flicky/carcare-storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mode := cfg.Mode()
	log.Info("data mode selected", "mode", mode, "reason", cfg.ModeReason())

	// Store
	var (
		store   *repository.Store
		session *repository.MockSession
	)
	if mode == config.ModeLive {
		poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
		if err != nil {
			log.Error("parse db config", "error", err)
			os.Exit(1)
		}
		poolCfg.MaxConns = cfg.DB.MaxConns

		dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			log.Error("connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := dbPool.Ping(ctx); err != nil {
			log.Error("ping database", "error", err)
			os.Exit(1)
		}
		if err := repository.Migrate(ctx, dbPool); err != nil {
			log.Error("migrate database", "error", err)
			os.Exit(1)
		}
		log.Info("connected to PostgreSQL")
		store = repository.NewPostgresStore(dbPool)
	} else {
		store = repository.NewMemoryStore()
		session = repository.NewMockSession(cfg.Store.SessionFile, store.Carts)
	}

	// Redis (optional)
	var redisClient *redis.Client
	var limiter ratelimit.Limiter = ratelimit.NewMemory(cfg.Shop.LoginRateLimit, cfg.Shop.LoginRateWindow)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Error("connect to Redis", "error", err)
			os.Exit(1)
		}
		log.Info("connected to Redis")
		limiter = ratelimit.NewRedis(redisClient, "login_attempts:", cfg.Shop.LoginRateLimit, cfg.Shop.LoginRateWindow)
	}

	// RabbitMQ (optional)
	var (
		amqpConn *amqp.Connection
		amqpCh   *amqp.Channel
	)
	if cfg.RabbitMQ.Enabled() {
		amqpConn, err = amqp.Dial(cfg.RabbitMQ.URL)
		if err != nil {
			log.Error("connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpConn.Close()

		amqpCh, err = amqpConn.Channel()
		if err != nil {
			log.Error("open RabbitMQ channel", "error", err)
			os.Exit(1)
		}
		defer amqpCh.Close()

		if err := worker.SetupRabbitMQ(amqpCh); err != nil {
			log.Error("setup RabbitMQ", "error", err)
			os.Exit(1)
		}
		log.Info("connected to RabbitMQ")
	}

	// Services
	authSvc := service.NewAuthService(store.Users, service.AuthOptions{
		Secret:     cfg.JWT.Secret,
		Expiry:     cfg.JWT.Expiration,
		AdminEmail: cfg.Shop.AdminEmail,
		Limiter:    limiter,
		Session:    session,
	})
	if user, err := authSvc.RestoreMockSession(ctx); err != nil {
		log.Warn("restore mock session", "error", err)
	} else if user != nil {
		log.Info("restored mock session", "user_id", user.ID, "path", session.Path())
	}

	accessSvc := service.NewAccessService(authSvc, store.Users, cfg.Shop.ProfileGrace)
	cartSvc := service.NewCartService(store.Carts)
	adminSvc := service.NewAdminService(store.Users, store.Orders, redisClient, cfg.Shop.DashboardCacheTTL, log)

	// Worker
	orderWorker := worker.NewOrderWorker(amqpCh, store.Orders, redisClient, adminSvc, log)
	var publisher events.Publisher
	if amqpCh != nil {
		publisher = events.NewAMQPPublisher(amqpCh)
	} else {
		publisher = events.NewLocalPublisher(orderWorker.Handle)
	}
	orderSvc := service.NewOrderService(store.Orders, store.Carts, publisher, log)

	// Router
	router := handler.NewRouter(handler.Handlers{
		Health:   handler.NewHealthHandler(store, mode, redisClient, amqpConn),
		Auth:     handler.NewAuthHandler(authSvc, accessSvc),
		Products: handler.NewProductHandler(),
		Cart:     handler.NewCartHandler(cartSvc),
		Orders:   handler.NewOrderHandler(orderSvc),
		Admin:    handler.NewAdminHandler(adminSvc),
	}, handler.RouterConfig{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Tokens:        authSvc,
		Profiles:      accessSvc,
		Log:           log,
	})

	if amqpCh != nil {
		if err := orderWorker.Start(ctx); err != nil {
			log.Error("start order worker", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port, "mode", mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	if amqpCh != nil {
		orderWorker.Stop()
		time.Sleep(500 * time.Millisecond)
	}
	cancel()
	log.Info("server stopped")
}
