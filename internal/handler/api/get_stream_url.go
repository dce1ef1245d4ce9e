package api

import (
	"errors"
	"net/http"

	"github.com/coursio/streams-ms-go/internal/api_context"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

// GetStreamURLHandler mints the signed manifest URL for the lesson page.
func GetStreamURLHandler(svc port.StreamURLGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.LessonIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "lesson ID is required", nil)
			return
		}

		input := port.GetStreamURLInput{LessonID: id, ClientIP: ClientIP(r)}
		out, err := svc.GetStreamURL(r.Context(), input)
		if err != nil {
			switch {
			case errors.Is(err, lesson.ErrLessonNotFound):
				WriteError(w, http.StatusNotFound, "Lesson not found", nil)
			case errors.Is(err, lesson.ErrLessonNotReady):
				WriteError(w, http.StatusConflict, "Video is not ready for streaming", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not build stream URL", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, out)
	}
}
