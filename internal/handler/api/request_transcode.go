package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/coursio/streams-ms-go/internal/api_context"
	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
	"github.com/coursio/streams-ms-go/internal/validation"
)

type RequestTranscodeRequest struct {
	SourceKey string `json:"source_key" validate:"required"`
}

// RequestTranscodeHandler accepts the enqueue call from lesson management.
// The source object must already be durably stored; the handler returns as
// soon as the task is queued.
func RequestTranscodeHandler(svc port.TranscodeRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.LessonIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "lesson ID is required", nil)
			return
		}

		var req RequestTranscodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		input := port.RequestTranscodeInput{ID: id, SourceKey: req.SourceKey}
		if err := svc.RequestTranscode(r.Context(), input); err != nil {
			if errors.Is(err, lesson.ErrLessonNotFound) {
				WriteError(w, http.StatusNotFound, "Lesson not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not enqueue transcoding", err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		log.Printf("✅  Transcoding of lesson #%s enqueued", id)
	}
}
