// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"credit-risk-service/internal/api"
	"credit-risk-service/internal/assessment"
	"credit-risk-service/internal/common/aws"
	"credit-risk-service/internal/common/config"
	"credit-risk-service/internal/common/database"
	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/common/observability"
	"credit-risk-service/internal/notify"
	"credit-risk-service/internal/storage"
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

	zapLog.Info("Starting risk assessment service...")

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

	store := storage.NewAssessmentStore(pg.DB, log)

	// --- Init Redis with retry (optional) ---
	var cache assessment.Cache
	if cfg.Cache.Enabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")

		cache = storage.NewAssessmentCache(rdb.Client, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	// --- Init Elasticsearch with retry (optional) ---
	var indexer assessment.Indexer
	var searcher api.CompanySearcher
	if cfg.Search.Enabled {
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

		esIndexer := storage.NewAssessmentIndexer(esClient.Client, cfg.Search.CompanyIndex, cfg.Search.IndividualIndex, log)
		indexer = esIndexer
		searcher = esIndexer
	}

	// --- Init notification clients (optional) ---
	var notifier assessment.Notifier
	if cfg.Notifications.Enabled {
		var sesClient *aws.SESClient
		var snsClient *aws.SNSClient

		if cfg.Notifications.AWS.SES.Enabled {
			sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("SES client failed", zap.Error(err))
			}
		}
		if cfg.Notifications.AWS.SNS.Enabled {
			snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("SNS client failed", zap.Error(err))
			}
		}

		var ses notify.SESService
		var sns notify.SNSService
		if sesClient != nil {
			ses = sesClient
		}
		if snsClient != nil {
			sns = snsClient
		}
		notifier = notify.NewRiskNotifier(cfg.Notifications, ses, sns, log)
		zapLog.Info("Notification clients initialized")
	}

	svc := assessment.NewService(store, cache, indexer, notifier, obs, log)
	handler := api.NewHandler(svc, searcher, log)
	server := api.NewServer(cfg.Server.Addr(), handler, log)

	go func() {
		if err := server.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Risk assessment service stopped gracefully")
}
