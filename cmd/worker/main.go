package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/coursio/streams-ms-go/internal/config"
	"github.com/coursio/streams-ms-go/internal/db"
	workerHandler "github.com/coursio/streams-ms-go/internal/handler/worker"
	"github.com/coursio/streams-ms-go/internal/logger"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/repository/mariadb"
	"github.com/coursio/streams-ms-go/internal/storage"
	"github.com/coursio/streams-ms-go/internal/task"
	"github.com/coursio/streams-ms-go/internal/transcoder"
	lessonSvc "github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	repo := mariadb.NewLessonRepository(database.DB)
	tc := transcoder.NewFFmpegTranscoder(cfg.FFmpegPath, cfg.FFprobePath)
	transcodeSvc := lessonSvc.NewLessonTranscoder(repo, strg, tc, cfg.Bucket)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeTranscodeLesson, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseTranscodeLessonPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.TranscodeLessonHandler(ctx, p, transcodeSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	if cfg.StorageDriver == "local" {
		strg, err := storage.NewLocalStorage(cfg.LocalStoragePath)
		if err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize local storage at %q: %v", cfg.LocalStoragePath, err)
			os.Exit(1)
		}
		return strg
	}

	strg, err := storage.NewStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	// Each task runs one full encode ladder; ffmpeg already saturates the
	// machine, so keep in-flight tasks low.
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 2})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
