package lesson

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/logger"
	"github.com/coursio/streams-ms-go/internal/port"
)

type backlogTranscoderSrv struct {
	repo  port.LessonRepository
	tasks port.TaskDispatcher
}

// compile-time check: *backlogTranscoderSrv must satisfy port.BacklogTranscoder
var _ port.BacklogTranscoder = (*backlogTranscoderSrv)(nil)

// NewBacklogTranscoder constructs a BacklogTranscoder implementation.
func NewBacklogTranscoder(repo port.LessonRepository, tasks port.TaskDispatcher) port.BacklogTranscoder {
	return &backlogTranscoderSrv{repo, tasks}
}

// TranscodeBacklog looks for video lessons stuck in a non-terminal status for
// over an hour, meaning the task was lost or the worker died mid-encode, and
// enqueues fresh transcoding tasks for them.
func (s *backlogTranscoderSrv) TranscodeBacklog(ctx context.Context) error {
	cutoff := time.Now().Add(-1 * time.Hour)
	stalled, err := s.repo.ListStalledTranscodesBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(stalled) == 0 {
		logger.Info(ctx, "no stalled transcodes found")
	}

	for _, st := range stalled {
		logger.Infof(ctx, "re-enqueueing transcode for lesson #%s", st.ID)
		if err := s.tasks.EnqueueTranscodeLesson(ctx, st.ID, st.SourceKey); err != nil {
			logger.Warnf(ctx, "failed to enqueue transcode task for lesson #%s: %v", st.ID, err)
		}
	}
	return nil
}
