package mock

import (
	"github.com/coursio/streams-ms-go/internal/db"
)

// Signer implements the URL signer for tests.
type Signer struct {
	SignOut   string
	VerifyOut bool

	SignCalled   bool
	VerifyCalled bool
	LessonID     db.UUID
	Filename     string
	IP           string
	Expires      int64
	Signature    string
}

func (s *Signer) Sign(lessonID db.UUID, filename, ip string, expires int64) string {
	s.SignCalled = true
	s.LessonID = lessonID
	s.Filename = filename
	s.IP = ip
	s.Expires = expires
	if s.SignOut != "" {
		return s.SignOut
	}
	return "mock-signature"
}

func (s *Signer) Verify(lessonID db.UUID, filename, ip string, expires int64, signature string) bool {
	s.VerifyCalled = true
	s.LessonID = lessonID
	s.Filename = filename
	s.IP = ip
	s.Expires = expires
	s.Signature = signature
	return s.VerifyOut
}
