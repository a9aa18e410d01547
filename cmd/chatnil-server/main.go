// cmd/chatnil-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chatnil/internal/common/auth"
	awsclients "chatnil/internal/common/aws"
	"chatnil/internal/common/config"
	"chatnil/internal/common/database"
	"chatnil/internal/common/logger"
	"chatnil/internal/common/observability"
	"chatnil/internal/compliance/scoring"
	"chatnil/internal/fmv"
	"chatnil/internal/matchmaking"
	"chatnil/internal/notify"
	"chatnil/internal/server"
	"chatnil/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting chatnil server...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if path := cfg.Database.Postgres.MigrationsPath; path != "" {
		if err := pg.Migrate(path); err != nil {
			zapLog.Fatal("migrations failed", zap.Error(err))
		}
		zapLog.Info("Migrations applied")
	}

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Notification clients ---
	notifications := store.NewNotificationStore(pg.DB, log)
	var notifier *notify.Notifier
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, err := awsclients.NewSES(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("SES client failed", zap.Error(err))
		}
		snsClient, err := awsclients.NewSNS(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("SNS client failed", zap.Error(err))
		}
		notifier = notify.NewNotifier(cfg.Notifications, sesClient, snsClient, notifications, log)
		zapLog.Info("Notification clients initialized")
	}

	// --- Domain services ---
	calculator, err := scoring.NewCalculator(
		cfg.Scoring.GreenThreshold,
		cfg.Scoring.YellowThreshold,
		cfg.Scoring.ScoreVersion,
		log,
	)
	if err != nil {
		zapLog.Fatal("scoring calculator init failed", zap.Error(err))
	}

	cacheTTL := time.Duration(cfg.Scoring.ContextCacheTTL) * time.Second

	deps := server.Deps{
		Deals:      store.NewDealStore(pg.DB, log),
		Athletes:   store.NewAthleteStore(pg.DB, redisClient, cacheTTL, log),
		Scores:     store.NewScoreStore(pg.DB, log),
		StateRules: store.NewStateRuleStore(pg.DB, log),
		Campaigns:  store.NewCampaignStore(pg.DB, log),
		FMVStore:   store.NewFMVStore(pg.DB, log),
		Audit:      store.NewAuditStore(pg.DB, log),
		Discover:   store.NewDiscoverStore(esClient, cfg.Database.Elasticsearch.AthleteIndex, log),
		Limiter:    store.NewRateLimiter(redisClient, log),
		Sessions:   auth.NewSessionStore(redisClient, time.Duration(cfg.Auth.SessionTTL)*time.Second),
		Calculator: calculator,
		FMVCalc:    fmv.NewCalculator(log),
		Matcher:    matchmaking.NewMatcher(log),
		Notifier:   notifier,
		Obs:        obs,
	}

	srv := server.NewServer(cfg, deps, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("forced shutdown", zap.Error(err))
	}

	zapLog.Info("Server stopped")
}
