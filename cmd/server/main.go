package main

import (
	"context" // context package is needed for Redis operations

	"ml_billing/internal/api"      // HTTP handlers
	"ml_billing/internal/billing"  // Billing service
	"ml_billing/internal/config"   // Configuration
	"ml_billing/internal/db"       // Database mirror
	"ml_billing/internal/history"  // Audit log
	"ml_billing/internal/model"    // Model stub
	"ml_billing/internal/registry" // Users

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{"app": cfg.AppName, "version": cfg.APIVersion}).Info("Starting")

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Process-wide audit log, handed to everything that writes or reads it
	hist := history.New()

	// Mirror users and records to the database when one is configured
	var store api.UserSaver
	if cfg.DBHost != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		s := db.NewStore(conn, log)
		hist.Subscribe(s)
		store = s
	} else {
		log.Warn("DB_HOST not set, records are kept in memory only")
	}

	// Setup Redis client
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
	}

	m := model.Load(cfg.ModelPath, log)
	svc := billing.NewService(hist, log, billing.WithInferenceCost(cfg.ModelInferenceCost))

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		log.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.NewRouter(r, api.Deps{
		AppName:    cfg.AppName,
		APIVersion: cfg.APIVersion,
		JWTSecret:  cfg.JWTSecret,
		Users:      registry.New(cfg.MinPasswordLength),
		Billing:    svc,
		History:    hist,
		Model:      m,
		Store:      store,
		Redis:      redisClient,
		Log:        log,
	})

	log.Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
