package main

import (
	"context"   // Context for startup and shutdown
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Process signals
	"os/signal" // Signal handling
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"sharewallet/internal/api"        // Custom package for API handlers
	"sharewallet/internal/config"     // Custom package for configuration
	"sharewallet/internal/db"         // Custom package for database access
	"sharewallet/internal/events"     // Custom package for ledger events
	"sharewallet/internal/ledger"     // Custom package for the ledger core
	"sharewallet/internal/middleware" // Custom package for middleware
	"sharewallet/internal/store"      // Custom package for ledger stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"golang.org/x/sync/errgroup"   // Run server and shutdown together
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)           // Setup logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup the ledger store and category names
	var ledgerStore ledger.Store
	var categories ledger.CategoryResolver = ledger.StubResolver{}
	if cfg.DBDriver == config.DriverMemory {
		ledgerStore = store.NewMemory() // Data lives only as long as the process
		logrus.Warn("Using in-memory store, data will not survive a restart")
	} else {
		gdb, err := db.Open(cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		if err := db.Migrate(ctx, gdb, cfg.SeedCategories); err != nil {
			logrus.Fatalf("migration failed: %v", err) // Fatal error if schema cannot be prepared
		}
		ledgerStore = store.NewGorm(gdb)
		if cfg.CategorySource == config.CategoriesDB {
			categories = store.NewCategoryCatalog(gdb) // Real category names
		}
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	// Setup event publisher when configured
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logrus.Fatalf("failed to connect to AMQP: %v", err)
		}
		publisher = p
	}
	defer publisher.Close()

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggerMiddleware(), middleware.MetricsMiddleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Dependencies{
		Ledger:    ledger.New(ledgerStore, categories), // Ledger core
		Publisher: publisher,                           // Event publisher
		Redis:     redisClient,                         // Stats cache
		StatsTTL:  cfg.StatsCacheTTL,                   // Stats cache lifetime
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"port":   cfg.AppPort,         // Listening port
			"driver": cfg.DBDriver,        // Store backend
			"cache":  cfg.RedisAddr != "", // Stats cache enabled
			"events": cfg.AMQPURL != "",   // Events enabled
		}).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done() // Signal received or server failed
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logrus.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}

// setupLogger configures the logrus formatter and level
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine readable logs in production
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel // Unknown level, keep the default
	}
	logrus.SetLevel(level)
}
