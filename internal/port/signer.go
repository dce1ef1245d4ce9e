package port

import "github.com/coursio/streams-ms-go/internal/db"

// URLSigner computes and checks the tamper-evident signature of a playback
// URL. The signature covers (lesson id, filename, client IP, expiry); expiry
// comparison against the clock is the caller's job.
type URLSigner interface {
	Sign(lessonID db.UUID, filename, ip string, expires int64) string
	Verify(lessonID db.UUID, filename, ip string, expires int64, signature string) bool
}
