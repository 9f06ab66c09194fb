package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bookflow-labs/bookflow-server/internal/agent"
	"github.com/bookflow-labs/bookflow-server/internal/config"
	dbpkg "github.com/bookflow-labs/bookflow-server/internal/db"
	"github.com/bookflow-labs/bookflow-server/internal/logger"
	"github.com/bookflow-labs/bookflow-server/internal/routes"
	"github.com/bookflow-labs/bookflow-server/internal/tasks"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.IsProduction())
	log := logger.Get()

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("redis unreachable, conversation sessions will fail", zap.Error(err))
	}

	completion, err := agent.NewGeminiClient(
		context.Background(),
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
	)
	if err != nil {
		log.Fatal("failed to create completion client", zap.Error(err))
	}

	sweeper := tasks.NewNoShowSweeper(db, cfg.NoShowGraceHrs)
	if err := sweeper.Start(cfg.NoShowSweepSpec); err != nil {
		log.Fatal("failed to start no-show sweeper", zap.Error(err))
	}
	defer sweeper.Stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, completion, cfg)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
