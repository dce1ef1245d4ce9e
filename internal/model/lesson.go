package model

import (
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
)

type LessonType string

const (
	LessonTypeVideo   LessonType = "video"
	LessonTypeArticle LessonType = "article"
	LessonTypeQuiz    LessonType = "quiz"
	LessonTypeFile    LessonType = "file"
)

// ProcessingStatus tracks the HLS transcoding lifecycle of a video lesson.
// Transitions are monotone: pending → processing → completed|failed.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

type Lesson struct {
	ID               db.UUID          `json:"id"`
	ModuleID         db.UUID          `json:"module_id"`
	Title            string           `json:"title"`
	Type             LessonType       `json:"type"`
	VideoURL         *string          `json:"video_url"`
	VideoProvider    *string          `json:"video_provider"`
	VideoSourceKey   *string          `json:"video_source_key"`
	VideoHLSPath     *string          `json:"video_hls_path"`
	ProcessingStatus ProcessingStatus `json:"video_processing_status"`
	FailureMessage   *string          `json:"failure_message"`
	DurationMinutes  *int             `json:"duration_minutes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// StreamAuthz carries the ownership facts needed to authorise playback of a
// lesson: which course it belongs to and who created that course.
type StreamAuthz struct {
	CourseID  db.UUID
	CreatorID db.UUID
}

// StalledTranscode identifies a video lesson whose encode never reached a
// terminal status, together with the source needed to re-enqueue it.
type StalledTranscode struct {
	ID        db.UUID
	SourceKey string
}
