package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/coursio/streams-ms-go/internal/cache"
	"github.com/coursio/streams-ms-go/internal/config"
	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/handler/api"
	"github.com/coursio/streams-ms-go/internal/logger"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/repository/mariadb"
	"github.com/coursio/streams-ms-go/internal/signer"
	"github.com/coursio/streams-ms-go/internal/storage"
	"github.com/coursio/streams-ms-go/internal/task"
	lessonSvc "github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	if err := strg.InitBucket(cfg.Bucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.Bucket, err)
		os.Exit(1)
	}

	lessonRepo := mariadb.NewLessonRepository(database.DB)
	urlSigner := signer.NewHMACSigner(cfg.StreamSecret)
	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, access caching and task dispatch are disabled")
	}

	transcodeRequesterSvc := lessonSvc.NewTranscodeRequester(lessonRepo, dispatcher)
	r.With(api.WithLessonID()).
		Post("/lessons/{id}/transcode", api.RequestTranscodeHandler(transcodeRequesterSvc))

	streamURLGetterSvc := lessonSvc.NewStreamURLGetter(lessonRepo, urlSigner, cfg.StreamBaseURL)
	r.With(api.WithLessonID()).
		Get("/lessons/{id}/stream-url", api.GetStreamURLHandler(streamURLGetterSvc))

	streamAuthorizerSvc := lessonSvc.NewStreamAuthorizer(lessonRepo, ca, urlSigner)
	r.Get("/stream/{lessonID}/{filename}", api.StreamHandler(streamAuthorizerSvc, strg, cfg.Bucket))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(api.WithUserAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	if cfg.StorageDriver == "local" {
		strg, err := storage.NewLocalStorage(cfg.LocalStoragePath)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize local storage at %q: %v", cfg.LocalStoragePath, err)
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
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
