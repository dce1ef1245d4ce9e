package port

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
)

// Cache is the TTL-bounded store bridging the signed entry request and the
// unsigned segment requests of a viewing session. The value is the IP address
// that was authorised; a miss returns the empty string.
type Cache interface {
	GetStreamAccess(ctx context.Context, userID, lessonID db.UUID) (string, error)
	SetStreamAccess(ctx context.Context, userID, lessonID db.UUID, ip string, ttl time.Duration)
}
