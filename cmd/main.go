package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pacerode/evaluator/internal/adapter/judge0"
	"github.com/pacerode/evaluator/internal/adapter/postgres/submissionrepository"
	"github.com/pacerode/evaluator/internal/adapter/redis/languagecache"
	"github.com/pacerode/evaluator/internal/config"
	"github.com/pacerode/evaluator/internal/core/services/evaluation"
	logger2 "github.com/pacerode/evaluator/internal/global/logger"
	http2 "github.com/pacerode/evaluator/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting evaluation service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	engineClient := judge0.NewClient(sysCfg.EngineConfig, logger)
	subRepo := submissionrepository.New(db, logger, sysCfg.PostgresConfig.Schema)
	langCache := languagecache.NewCatalogCache(redisClient, logger, sysCfg.EngineConfig.CatalogTTL)

	// services
	evalSvc := evaluation.NewEvaluationService(engineClient, subRepo, langCache, logger, sysCfg.EngineConfig)
	serviceProvider := http2.NewServiceProvider(evalSvc)

	// server
	httpServer := http2.NewServer(serverPort(), "evaluator", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func serverPort() int {
	if value, exists := os.LookupEnv("SERVER_PORT"); exists {
		if port, err := strconv.Atoi(value); err == nil {
			return port
		}
	}
	return 8082
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
