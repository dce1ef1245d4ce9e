package lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/mock"
	"github.com/coursio/streams-ms-go/internal/model"
)

func TestBacklogTranscoder_RepoError(t *testing.T) {
	repo := &mock.LessonRepo{StalledErr: errors.New("db fail")}
	dispatcher := &mock.Dispatcher{}
	svc := NewBacklogTranscoder(repo, dispatcher)

	err := svc.TranscodeBacklog(context.Background())
	if err == nil || err.Error() != "db fail" {
		t.Fatalf("expected db fail, got %v", err)
	}
	if dispatcher.EnqueueCalled {
		t.Error("nothing should be enqueued when the query fails")
	}
}

func TestBacklogTranscoder_Success(t *testing.T) {
	id1 := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	id2 := db.UUID(uuid.MustParse("ffffffff-1111-2222-3333-444444444444"))
	repo := &mock.LessonRepo{StalledOut: []model.StalledTranscode{
		{ID: id1, SourceKey: "videos/one.mp4"},
		{ID: id2, SourceKey: "videos/two.mp4"},
	}}
	dispatcher := &mock.Dispatcher{}
	svc := NewBacklogTranscoder(repo, dispatcher)

	if err := svc.TranscodeBacklog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.EnqueuedIDs) != 2 {
		t.Fatalf("expected 2 enqueue calls, got %d", len(dispatcher.EnqueuedIDs))
	}
	if dispatcher.EnqueuedIDs[0] != id1 || dispatcher.EnqueuedIDs[1] != id2 {
		t.Errorf("enqueued IDs mismatch: %+v", dispatcher.EnqueuedIDs)
	}
	if cutoffAge := time.Since(repo.StalledCutoff); cutoffAge < time.Hour {
		t.Errorf("cutoff %v is too recent, in-flight encodes would be re-enqueued", repo.StalledCutoff)
	}
}

func TestBacklogTranscoder_DispatcherError(t *testing.T) {
	id1 := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	id2 := db.UUID(uuid.MustParse("ffffffff-1111-2222-3333-444444444444"))
	repo := &mock.LessonRepo{StalledOut: []model.StalledTranscode{
		{ID: id1, SourceKey: "videos/one.mp4"},
		{ID: id2, SourceKey: "videos/two.mp4"},
	}}
	dispatcher := &mock.Dispatcher{EnqueueErr: errors.New("queue fail")}
	svc := NewBacklogTranscoder(repo, dispatcher)

	// one lesson failing to enqueue must not starve the rest
	if err := svc.TranscodeBacklog(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.EnqueuedIDs) != 2 {
		t.Fatalf("expected 2 enqueue calls, got %d", len(dispatcher.EnqueuedIDs))
	}
}
