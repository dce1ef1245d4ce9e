package cache

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/port"
)

// NoopCache is used when Redis is not configured. Every lookup is a miss, so
// the streaming gate only ever honours signed entry requests.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetStreamAccess(ctx context.Context, userID, lessonID db.UUID) (string, error) {
	return "", nil // always cache miss
}

func (n *NoopCache) SetStreamAccess(ctx context.Context, userID, lessonID db.UUID, ip string, ttl time.Duration) {
}
