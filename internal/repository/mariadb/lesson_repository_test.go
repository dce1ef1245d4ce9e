package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/google/uuid"
)

func mustValue(t *testing.T, id db.UUID) []byte {
	t.Helper()
	v, err := id.Value()
	if err != nil {
		t.Fatalf("uuid value: %v", err)
	}
	return v.([]byte)
}

func TestLessonRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	mockID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	l := &model.Lesson{
		ID:               mockID,
		ModuleID:         db.NewUUID(),
		Title:            "Intro to Goroutines",
		Type:             model.LessonTypeVideo,
		ProcessingStatus: model.ProcessingStatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta(`
      INSERT INTO lessons
        (id, module_id, title, type, video_url, video_provider, video_source_key, video_hls_path, video_processing_status, failure_message, duration_minutes)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)).
		WithArgs(
			l.ID,
			sqlmock.AnyArg(), // ModuleID
			l.Title,
			string(l.Type),
			nil, nil, nil, nil,
			string(l.ProcessingStatus),
			nil, nil,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), l); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLessonRepository_Update_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	hlsPath := "courses/hls/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee/aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.m3u8"
	minutes := 2
	l := &model.Lesson{
		ID:               db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")),
		ProcessingStatus: model.ProcessingStatusCompleted,
		VideoHLSPath:     &hlsPath,
		DurationMinutes:  &minutes,
	}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE lessons")).
		WithArgs(
			nil, nil, nil,
			&hlsPath,
			string(model.ProcessingStatusCompleted),
			nil,
			&minutes,
			l.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), l); err != nil {
		t.Errorf("Update() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLessonRepository_GetByID_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	moduleID := db.NewUUID()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "module_id", "title", "type", "video_url", "video_provider",
		"video_source_key", "video_hls_path", "video_processing_status",
		"failure_message", "duration_minutes", "created_at", "updated_at",
	}).AddRow(
		mustValue(t, id), mustValue(t, moduleID), "Intro to Goroutines", "video",
		nil, nil, nil, nil, "pending", nil, nil, now, now,
	)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, module_id, title, type")).
		WithArgs(id).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() returned unexpected error: %v", err)
	}
	if got.Title != "Intro to Goroutines" {
		t.Errorf("title = %q", got.Title)
	}
	if got.ProcessingStatus != model.ProcessingStatusPending {
		t.Errorf("status = %q", got.ProcessingStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestLessonRepository_GetStreamAuthz(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	lessonID := db.NewUUID()
	courseID := db.NewUUID()
	creatorID := db.NewUUID()

	rows := sqlmock.NewRows([]string{"course_id", "creator_id"}).
		AddRow(mustValue(t, courseID), mustValue(t, creatorID))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT m.course_id, c.creator_id")).
		WithArgs(lessonID).
		WillReturnRows(rows)

	authz, err := repo.GetStreamAuthz(context.Background(), lessonID)
	if err != nil {
		t.Fatalf("GetStreamAuthz() returned unexpected error: %v", err)
	}
	if authz.CourseID.String() != courseID.String() {
		t.Errorf("course id = %s; want %s", authz.CourseID, courseID)
	}
	if authz.CreatorID.String() != creatorID.String() {
		t.Errorf("creator id = %s; want %s", authz.CreatorID, creatorID)
	}
}

func TestLessonRepository_IsEnrolled(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	userID := db.NewUUID()
	courseID := db.NewUUID()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs(userID, courseID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	enrolled, err := repo.IsEnrolled(context.Background(), userID, courseID)
	if err != nil {
		t.Fatalf("IsEnrolled() returned unexpected error: %v", err)
	}
	if !enrolled {
		t.Error("expected enrolled = true")
	}
}

func TestLessonRepository_IsEnrolled_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewLessonRepository(sqlDB)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WillReturnError(errors.New("db down"))

	if _, err := repo.IsEnrolled(context.Background(), db.NewUUID(), db.NewUUID()); err == nil {
		t.Error("expected error, got nil")
	}
}
