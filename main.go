package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tngo0508/simple-crud-api/handlers"
	"github.com/tngo0508/simple-crud-api/internal/config"
	"github.com/tngo0508/simple-crud-api/internal/database"
	"github.com/tngo0508/simple-crud-api/internal/templates"
	"github.com/tngo0508/simple-crud-api/internal/users"
	"github.com/tngo0508/simple-crud-api/pkg/logger"
	"github.com/tngo0508/simple-crud-api/pkg/metrics"
	"github.com/tngo0508/simple-crud-api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging first (LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// optional Redis connection, used only by the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	// Wire repositories: Mongo-backed when reachable, memory-backed otherwise so
	// the API stays usable for local development.
	var userRepo users.Repository
	var tplRepo templates.Repository
	if errConn != nil {
		logger.Warnf("could not connect to MongoDB after %d attempts (%v) — using memory-backed repositories", maxAttempts, errConn)
		userRepo = users.NewMemoryRepository()
		tplRepo = templates.NewMemoryRepository(nil)
	} else {
		logger.Info("Database Connected")
		defer func() { _ = client.Disconnect(ctx) }()
		db := client.Database(cfg.MongoDB.Database)
		userRepo = users.NewMongoRepository(db.Collection("users"))
		mongoTplRepo, err := templates.NewMongoRepository(db.Collection("moldcosts"), db.Collection("defaultTemplate"))
		if err != nil {
			logger.Fatalf("failed to prepare template collection: %v", err)
		}
		tplRepo = mongoTplRepo
	}
	userSvc := users.NewService(userRepo)
	tplSvc := templates.NewService(tplRepo)

	api := r.Group("/api")
	handlers.RegisterUserRoutes(api, userSvc)
	handlers.RegisterTemplateRoutes(api, tplSvc)
	handlers.RegisterSwagger(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the document store is reachable
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}
		if client != nil {
			pctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			deps["mongo"] = client.Ping(pctx, nil) == nil
		} else {
			deps["mongo"] = false
		}
		if !deps["mongo"] {
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Server started at http://%s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
