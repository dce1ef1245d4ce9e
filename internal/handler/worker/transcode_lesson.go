package worker

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/task"
)

// TranscodeLessonHandler handles a transcode-lesson task.
// It converts the incoming task payload to the input expected by
// the lesson transcoder service and delegates the call.
func TranscodeLessonHandler(ctx context.Context, p task.TranscodeLessonPayload, svc port.LessonTranscoder) error {
	id, err := uuid.Parse(p.LessonID)
	if err != nil {
		log.Printf("❌  Invalid lesson ID %q: %v", p.LessonID, err)
		return err
	}

	in := port.TranscodeLessonInput{ID: db.UUID(id), SourceKey: p.SourceKey}
	if err := svc.TranscodeLesson(ctx, in); err != nil {
		log.Printf("❌  Failed to transcode lesson #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully transcoded lesson #%s", id)
	return nil
}
