package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/stark-bootcamp.net/internal/adapter/crypto"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/contestrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/leaderboardrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/roundrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/postgres/teamrepository"
	"gitlab.com/stark-bootcamp.net/internal/adapter/redis/leaderboardcache"
	"gitlab.com/stark-bootcamp.net/internal/adapter/storage/miniostore"
	"gitlab.com/stark-bootcamp.net/internal/config"
	"gitlab.com/stark-bootcamp.net/internal/core/services/auth"
	"gitlab.com/stark-bootcamp.net/internal/core/services/contest"
	"gitlab.com/stark-bootcamp.net/internal/core/services/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/core/services/problem"
	"gitlab.com/stark-bootcamp.net/internal/core/services/registration"
	"gitlab.com/stark-bootcamp.net/internal/core/services/round"
	"gitlab.com/stark-bootcamp.net/internal/core/services/submission"
	logger2 "gitlab.com/stark-bootcamp.net/internal/global/logger"
	http2 "gitlab.com/stark-bootcamp.net/internal/http"
	"gitlab.com/stark-bootcamp.net/internal/schedulerengine"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	logger := logger2.Init(sysCfg.LogLevel)
	defer logger.Sync()
	logger2.Info("Starting bootcamp contest service", "debug", sysCfg.DebugMode)

	ctxBg, cancelBg := context.WithCancel(context.Background())
	defer cancelBg()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		logger.Error("Failed to set up database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.EnsureSchema(ctxBg, db, sysCfg.PostgresConfig.Schema); err != nil {
		logger.Error("Failed to ensure schema", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	fileStore, err := miniostore.New(sysCfg.StorageConfig, logger)
	if err != nil {
		logger.Error("Failed to create object storage client", "error", err)
		os.Exit(1)
	}
	if err := fileStore.EnsureBucket(ctxBg); err != nil {
		logger.Error("Failed to ensure upload bucket", "error", err)
		os.Exit(1)
	}

	// SECONDARY PORTS
	schema := sysCfg.PostgresConfig.Schema
	teamPort := teamrepository.New(db, logger, schema)
	contestPort := contestrepository.NewContestRepository(db, logger, schema)
	problemPort := problemrepository.NewProblemRepository(db, logger, schema)
	submissionPort := submissionrepository.NewSubmissionRepository(db, logger, schema)
	roundPort := roundrepository.NewRoundRepository(db, logger, schema)
	leaderboardPort := leaderboardrepository.NewLeaderboardRepository(db, logger, schema)
	rankingCache := leaderboardcache.NewLeaderboardCache(redisClient, logger)

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	//services
	leaderboardSvc := leaderboard.NewLeaderboardService(leaderboardPort, roundPort, submissionPort, rankingCache, sysCfg.LeaderboardCfg.CacheTTL, logger)
	serviceProvider := http2.NewServiceProvider(
		registration.NewRegistrationService(teamPort, leaderboardSvc, logger),
		contest.NewContestService(contestPort, logger),
		problem.NewProblemService(problemPort, sysCfg.DefaultContestID, logger),
		submission.NewSubmissionService(teamPort, problemPort, submissionPort, leaderboardSvc, sysCfg.DefaultContestID, logger),
		round.NewRoundService(teamPort, roundPort, fileStore, leaderboardSvc, logger),
		leaderboardSvc,
		auth.NewLocalAuthService(sysCfg.JwtConfig, jwtProvider, logger),
	)

	//server
	httpServer := http2.NewServer(*sysCfg.HttpConfig, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	if err := httpServer.Start(ctxBg); err != nil {
		logger.Error("Failed to start http server", "error", err)
		os.Exit(1)
	}

	scheduler := schedulerengine.NewSchedulerEngine(sysCfg.LeaderboardCfg, leaderboardSvc, logger)
	if !sysCfg.DebugMode {
		scheduler.StartLeaderboardRefresh(ctxBg)
	}

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	cancelBg()
	scheduler.Wait()

	logger.Info("successfully shutdown server")
}

// setupDatabase opens and pings the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
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
