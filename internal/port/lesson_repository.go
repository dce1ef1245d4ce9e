package port

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
)

// LessonRepository defines persistence operations for lessons and the
// ownership/enrollment facts needed to authorise playback.
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, ID db.UUID) (*model.Lesson, error)
	GetStreamAuthz(ctx context.Context, lessonID db.UUID) (*model.StreamAuthz, error)
	IsEnrolled(ctx context.Context, userID, courseID db.UUID) (bool, error)
	ListStalledTranscodesBefore(ctx context.Context, cutoff time.Time) ([]model.StalledTranscode, error)
}
