package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/port"
)

type LessonRepository struct {
	db *sql.DB
}

// compile-time check: *LessonRepository must satisfy port.LessonRepository
var _ port.LessonRepository = (*LessonRepository)(nil)

func NewLessonRepository(db *sql.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	log.Printf("creating database record for lesson #%s, at status %q...", lesson.ID, lesson.ProcessingStatus)

	const query = `
      INSERT INTO lessons
        (id, module_id, title, type, video_url, video_provider, video_source_key, video_hls_path, video_processing_status, failure_message, duration_minutes)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		lesson.ID, lesson.ModuleID, lesson.Title, lesson.Type,
		lesson.VideoURL, lesson.VideoProvider, lesson.VideoSourceKey,
		lesson.VideoHLSPath, lesson.ProcessingStatus,
		lesson.FailureMessage, lesson.DurationMinutes,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	log.Printf("updating database record for lesson #%s, with status %q...", lesson.ID, lesson.ProcessingStatus)

	const query = `
      UPDATE lessons
      SET
        video_url               = ?,
        video_provider          = ?,
        video_source_key        = ?,
        video_hls_path          = ?,
        video_processing_status = ?,
        failure_message         = ?,
        duration_minutes        = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		lesson.VideoURL,
		lesson.VideoProvider,
		lesson.VideoSourceKey,
		lesson.VideoHLSPath,
		lesson.ProcessingStatus,
		lesson.FailureMessage,
		lesson.DurationMinutes,
		lesson.ID, // WHERE clause
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *LessonRepository) GetByID(ctx context.Context, ID db.UUID) (*model.Lesson, error) {
	log.Printf("fetching lesson #%s from the database...", ID)

	const query = `
      SELECT id, module_id, title, type, video_url, video_provider, video_source_key, video_hls_path, video_processing_status, failure_message, duration_minutes, created_at, updated_at
      FROM lessons
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, ID)
	var lesson model.Lesson
	if err := row.Scan(
		&lesson.ID, &lesson.ModuleID, &lesson.Title, &lesson.Type,
		&lesson.VideoURL, &lesson.VideoProvider, &lesson.VideoSourceKey,
		&lesson.VideoHLSPath, &lesson.ProcessingStatus,
		&lesson.FailureMessage, &lesson.DurationMinutes,
		&lesson.CreatedAt, &lesson.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &lesson, nil
}

func (r *LessonRepository) GetStreamAuthz(ctx context.Context, lessonID db.UUID) (*model.StreamAuthz, error) {
	log.Printf("fetching stream authorization facts for lesson #%s...", lessonID)

	const query = `
      SELECT m.course_id, c.creator_id
      FROM lessons l
      JOIN modules m ON m.id = l.module_id
      JOIN courses c ON c.id = m.course_id
      WHERE l.id = ?
    `
	row := r.db.QueryRowContext(ctx, query, lessonID)
	var authz model.StreamAuthz
	if err := row.Scan(&authz.CourseID, &authz.CreatorID); err != nil {
		return nil, err
	}

	return &authz, nil
}

func (r *LessonRepository) ListStalledTranscodesBefore(ctx context.Context, cutoff time.Time) ([]model.StalledTranscode, error) {
	const query = `
      SELECT id, video_source_key
      FROM lessons
      WHERE type = 'video'
        AND video_processing_status IN ('pending', 'processing')
        AND video_source_key IS NOT NULL
        AND updated_at < ?
    `
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stalled []model.StalledTranscode
	for rows.Next() {
		var s model.StalledTranscode
		if err := rows.Scan(&s.ID, &s.SourceKey); err != nil {
			return nil, err
		}
		stalled = append(stalled, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stalled, nil
}

func (r *LessonRepository) IsEnrolled(ctx context.Context, userID, courseID db.UUID) (bool, error) {
	const query = `
      SELECT EXISTS(
        SELECT 1 FROM enrollments
        WHERE user_id = ? AND course_id = ? AND status = 'active'
      )
    `
	var enrolled bool
	if err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&enrolled); err != nil {
		return false, err
	}

	return enrolled, nil
}
