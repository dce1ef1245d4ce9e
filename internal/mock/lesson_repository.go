package mock

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
)

// LessonRepo implements repository operations for tests.
type LessonRepo struct {
	LessonRecord *model.Lesson
	AuthzRecord  *model.StreamAuthz
	EnrolledOut  bool
	StalledOut   []model.StalledTranscode

	GetErr      error
	CreateErr   error
	UpdateErr   error
	AuthzErr    error
	EnrolledErr error
	StalledErr  error

	GetCalled      bool
	Created        *model.Lesson
	Updated        []*model.Lesson
	AuthzCalled    bool
	EnrolledCalled bool
	EnrolledUser   db.UUID
	EnrolledCourse db.UUID
	StalledCutoff  time.Time
}

func (m *LessonRepo) GetByID(ctx context.Context, id db.UUID) (*model.Lesson, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.LessonRecord, nil
}

func (m *LessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	m.Created = lesson
	return m.CreateErr
}

func (m *LessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	snapshot := *lesson
	m.Updated = append(m.Updated, &snapshot)
	return m.UpdateErr
}

func (m *LessonRepo) GetStreamAuthz(ctx context.Context, lessonID db.UUID) (*model.StreamAuthz, error) {
	m.AuthzCalled = true
	if m.AuthzErr != nil {
		return nil, m.AuthzErr
	}
	return m.AuthzRecord, nil
}

func (m *LessonRepo) ListStalledTranscodesBefore(ctx context.Context, cutoff time.Time) ([]model.StalledTranscode, error) {
	m.StalledCutoff = cutoff
	if m.StalledErr != nil {
		return nil, m.StalledErr
	}
	return m.StalledOut, nil
}

func (m *LessonRepo) IsEnrolled(ctx context.Context, userID, courseID db.UUID) (bool, error) {
	m.EnrolledCalled = true
	m.EnrolledUser = userID
	m.EnrolledCourse = courseID
	if m.EnrolledErr != nil {
		return false, m.EnrolledErr
	}
	return m.EnrolledOut, nil
}
