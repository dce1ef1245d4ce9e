package mock

import (
	"context"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
)

// Cache implements the access cache for tests.
type Cache struct {
	GetOut string
	GetErr error

	GetCalled bool
	SetCalled bool
	SetUser   db.UUID
	SetLesson db.UUID
	SetIP     string
	SetTTL    time.Duration
}

func (c *Cache) GetStreamAccess(ctx context.Context, userID, lessonID db.UUID) (string, error) {
	c.GetCalled = true
	if c.GetErr != nil {
		return "", c.GetErr
	}
	return c.GetOut, nil
}

func (c *Cache) SetStreamAccess(ctx context.Context, userID, lessonID db.UUID, ip string, ttl time.Duration) {
	c.SetCalled = true
	c.SetUser = userID
	c.SetLesson = lessonID
	c.SetIP = ip
	c.SetTTL = ttl
}
