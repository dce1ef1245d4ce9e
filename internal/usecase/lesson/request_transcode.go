package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/port"
)

type transcodeRequesterSrv struct {
	repo       port.LessonRepository
	dispatcher port.TaskDispatcher
}

func NewTranscodeRequester(repo port.LessonRepository, dispatcher port.TaskDispatcher) port.TranscodeRequester {
	return &transcodeRequesterSrv{repo, dispatcher}
}

// RequestTranscode marks the lesson pending and enqueues the transcoding
// task. The caller guarantees the source object is already durably stored;
// this returns as soon as the task is on the queue.
func (s *transcodeRequesterSrv) RequestTranscode(ctx context.Context, in port.RequestTranscodeInput) error {
	lesson, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLessonNotFound
		}
		return err
	}
	if lesson.Type != model.LessonTypeVideo {
		return fmt.Errorf("lesson #%s is of type %q, only video lessons can be transcoded", lesson.ID, lesson.Type)
	}
	// Re-enqueueing mid-encode would race the worker on the same output tree.
	if lesson.ProcessingStatus == model.ProcessingStatusProcessing {
		return fmt.Errorf("lesson #%s is already being transcoded", lesson.ID)
	}

	provider := "local"
	lesson.VideoSourceKey = &in.SourceKey
	lesson.VideoProvider = &provider
	lesson.VideoHLSPath = nil
	lesson.DurationMinutes = nil
	lesson.FailureMessage = nil
	lesson.ProcessingStatus = model.ProcessingStatusPending
	if err := s.repo.Update(ctx, lesson); err != nil {
		return fmt.Errorf("failed updating lesson: %w", err)
	}

	if err := s.dispatcher.EnqueueTranscodeLesson(ctx, lesson.ID, in.SourceKey); err != nil {
		return fmt.Errorf("failed enqueueing transcode task: %w", err)
	}

	log.Printf("enqueued transcoding of lesson #%s from source %q", lesson.ID, in.SourceKey)
	return nil
}
