package mock

import (
	"context"

	"github.com/coursio/streams-ms-go/internal/db"
)

// Dispatcher implements the task dispatcher for tests.
type Dispatcher struct {
	EnqueueErr error

	EnqueueCalled bool
	EnqueuedID    db.UUID
	EnqueuedKey   string
	EnqueuedIDs   []db.UUID
}

func (d *Dispatcher) EnqueueTranscodeLesson(ctx context.Context, id db.UUID, sourceKey string) error {
	d.EnqueueCalled = true
	d.EnqueuedID = id
	d.EnqueuedKey = sourceKey
	d.EnqueuedIDs = append(d.EnqueuedIDs, id)
	return d.EnqueueErr
}
