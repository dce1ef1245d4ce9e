package api_context

import (
	"context"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/model"
)

type ctxKey string

const (
	LessonIDKey   ctxKey = "lessonID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRoleKey   ctxKey = "authRole"
)

func LessonIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(LessonIDKey).(db.UUID)
	return id, ok
}

func AuthUserIDFromContext(ctx context.Context) (db.UUID, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(db.UUID)
	return id, ok
}

func AuthRoleFromContext(ctx context.Context) (model.Role, bool) {
	role, ok := ctx.Value(AuthRoleKey).(model.Role)
	return role, ok
}
