package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coursio/streams-ms-go/internal/api_context"
	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/logger"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

// StreamHandler serves HLS manifests and segments out of private storage.
// The first request of a session arrives signed; every follow-up fetch the
// player issues is bare and rides on the access cache instead.
func StreamHandler(svc port.StreamAuthorizer, strg port.Storage, bucket string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessonIDStr := chi.URLParam(r, "lessonID")
		parsed, err := uuid.Parse(lessonIDStr)
		if err != nil {
			WriteError(w, http.StatusNotFound, "Lesson not found", nil)
			return
		}
		lessonID := db.UUID(parsed)
		filename := chi.URLParam(r, "filename")

		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		role, _ := api_context.AuthRoleFromContext(r.Context())

		input := port.AuthorizeStreamInput{
			UserID:   userID,
			Role:     role,
			LessonID: lessonID,
			Filename: filename,
			ClientIP: ClientIP(r),
		}
		query := r.URL.Query()
		if sig := query.Get("signature"); sig != "" {
			expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
			if err != nil {
				WriteError(w, http.StatusForbidden, "Invalid or expired video URL", nil)
				return
			}
			input.HasSignature = true
			input.Signature = sig
			input.SignedIP = query.Get("ip")
			input.Expires = expires
		}

		out, err := svc.AuthorizeStream(r.Context(), input)
		if err != nil {
			writeStreamError(w, err)
			return
		}

		found, err := strg.FileExists(r.Context(), bucket, out.ObjectKey)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not check file existence", err)
			return
		}
		if !found {
			WriteError(w, http.StatusNotFound, "File not found", nil)
			return
		}

		reader, err := strg.GetFile(r.Context(), bucket, out.ObjectKey)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not open file", err)
			return
		}
		defer reader.Close()

		w.Header().Set("Content-Type", lesson.ContentTypeForFile(filename))
		w.Header().Set("Cache-Control", "no-store, max-age=0, must-revalidate")
		if _, err := io.Copy(w, reader); err != nil {
			logger.Errorf(r.Context(), "❌  Failed streaming %q: %v", out.ObjectKey, err)
		}
	}
}

func writeStreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lesson.ErrLessonNotFound):
		WriteError(w, http.StatusNotFound, "Lesson not found", nil)
	case errors.Is(err, lesson.ErrObjectNotFound):
		WriteError(w, http.StatusNotFound, "File not found", nil)
	case errors.Is(err, lesson.ErrLessonNotReady):
		WriteError(w, http.StatusForbidden, "Video is not ready for streaming", nil)
	case errors.Is(err, lesson.ErrInvalidSignature):
		WriteError(w, http.StatusForbidden, "Invalid video URL signature", nil)
	case errors.Is(err, lesson.ErrExpiredSignature):
		WriteError(w, http.StatusForbidden, "Video URL has expired", nil)
	case errors.Is(err, lesson.ErrIPMismatch):
		WriteError(w, http.StatusForbidden, "Video URL is bound to a different network", nil)
	case errors.Is(err, lesson.ErrNotEnrolled):
		WriteError(w, http.StatusForbidden, "You are not enrolled in this course", nil)
	case errors.Is(err, lesson.ErrSessionExpired):
		WriteError(w, http.StatusForbidden, "Streaming session expired, please reload the page", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "could not authorize stream", err)
	}
}
