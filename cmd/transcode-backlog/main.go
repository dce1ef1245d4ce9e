package main

import (
	"context"
	"log"

	"github.com/coursio/streams-ms-go/internal/config"
	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/repository/mariadb"
	"github.com/coursio/streams-ms-go/internal/task"
	lessonSvc "github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewLessonRepository(database.DB)

	backlog := lessonSvc.NewBacklogTranscoder(repo, dispatcher)
	if err := backlog.TranscodeBacklog(context.Background()); err != nil {
		log.Fatalf("❌  Backlog transcoding failed: %v", err)
	}
	log.Println("✅  Backlog transcoding completed")
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
