package port

import (
	"context"

	"github.com/coursio/streams-ms-go/internal/db"
)

// TaskDispatcher enqueues asynchronous lesson-processing tasks.
type TaskDispatcher interface {
	EnqueueTranscodeLesson(ctx context.Context, id db.UUID, sourceKey string) error
}
