package port

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
)

// TranscodeRequester marks a lesson pending and enqueues its transcoding task.
type TranscodeRequester interface {
	RequestTranscode(ctx context.Context, in RequestTranscodeInput) error
}
type RequestTranscodeInput struct {
	ID        db.UUID
	SourceKey string
}

// LessonTranscoder runs the full encode of one lesson on a worker.
type LessonTranscoder interface {
	TranscodeLesson(ctx context.Context, in TranscodeLessonInput) error
}
type TranscodeLessonInput struct {
	ID        db.UUID
	SourceKey string
}

// BacklogTranscoder re-enqueues encodes that never reached a terminal status.
type BacklogTranscoder interface {
	TranscodeBacklog(ctx context.Context) error
}

// StreamURLGetter mints a signed, time-boxed, IP-bound playback URL for a
// transcoded lesson.
type StreamURLGetter interface {
	GetStreamURL(ctx context.Context, in GetStreamURLInput) (GetStreamURLOutput, error)
}
type GetStreamURLInput struct {
	LessonID db.UUID
	ClientIP string
}
type GetStreamURLOutput struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StreamAuthorizer decides whether one manifest/segment request may be served
// and resolves the storage key to stream from.
type StreamAuthorizer interface {
	AuthorizeStream(ctx context.Context, in AuthorizeStreamInput) (AuthorizeStreamOutput, error)
}
type AuthorizeStreamInput struct {
	UserID   db.UUID
	Role     model.Role
	LessonID db.UUID
	Filename string
	ClientIP string

	// Signed-entry parameters; HasSignature distinguishes an initial signed
	// request from a bare sub-resource fetch.
	HasSignature bool
	Signature    string
	SignedIP     string
	Expires      int64
}
type AuthorizeStreamOutput struct {
	ObjectKey string
}
