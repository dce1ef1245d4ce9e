package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	msdb "github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
)

// SeededCourse holds the identifiers of one course/module pair created for a
// test, ready to hang lessons and enrollments off.
type SeededCourse struct {
	CourseID  msdb.UUID
	ModuleID  msdb.UUID
	CreatorID msdb.UUID
}

func SeedCourse(t *testing.T, db *sql.DB) SeededCourse {
	t.Helper()

	s := SeededCourse{
		CourseID:  msdb.UUID(uuid.New()),
		ModuleID:  msdb.UUID(uuid.New()),
		CreatorID: msdb.UUID(uuid.New()),
	}

	if _, err := db.Exec(
		"INSERT INTO courses (id, creator_id, title) VALUES (?, ?, ?)",
		s.CourseID, s.CreatorID, "Test Course",
	); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO modules (id, course_id, title, position) VALUES (?, ?, ?, ?)",
		s.ModuleID, s.CourseID, "Test Module", 1,
	); err != nil {
		t.Fatalf("seed module: %v", err)
	}

	return s
}

func SeedVideoLesson(t *testing.T, db *sql.DB, moduleID msdb.UUID, status model.ProcessingStatus, hlsPath *string) msdb.UUID {
	t.Helper()

	id := msdb.UUID(uuid.New())
	sourceKey := "videos/" + id.String() + ".mp4"
	if _, err := db.Exec(
		`INSERT INTO lessons (id, module_id, title, type, video_source_key, video_hls_path, video_processing_status)
         VALUES (?, ?, ?, 'video', ?, ?, ?)`,
		id, moduleID, "Test Lesson", sourceKey, hlsPath, status,
	); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}

	return id
}

func SeedEnrollment(t *testing.T, db *sql.DB, userID, courseID msdb.UUID, status string) {
	t.Helper()

	if _, err := db.Exec(
		"INSERT INTO enrollments (id, user_id, course_id, status) VALUES (?, ?, ?, ?)",
		msdb.UUID(uuid.New()), userID, courseID, status,
	); err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
}
