package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeTranscodeLesson = "lesson:transcode"

// TranscodeTimeout is the hard wall-clock ceiling for one encode. Past it the
// runtime cancels the task context and the worker records the lesson as failed.
const TranscodeTimeout = time.Hour

type TranscodeLessonPayload struct {
	LessonID  string `json:"lesson_id"`
	SourceKey string `json:"source_key"`
}

// NewTranscodeLessonTask creates an Asynq task transcoding one lesson's source
// video into an HLS package. Transcoding is expensive and a failure is rarely
// self-healing (bad codec, corrupt upload), so the task is never retried.
func NewTranscodeLessonTask(lessonID, sourceKey string) (*asynq.Task, error) {
	p := TranscodeLessonPayload{LessonID: lessonID, SourceKey: sourceKey}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal transcode-lesson payload: %w", err)
	}
	return asynq.NewTask(TypeTranscodeLesson, data,
		asynq.MaxRetry(0),
		asynq.Timeout(TranscodeTimeout),
	), nil
}

// ParseTranscodeLessonPayload parses the task payload to TranscodeLessonPayload.
func ParseTranscodeLessonPayload(t *asynq.Task) (TranscodeLessonPayload, error) {
	var p TranscodeLessonPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return TranscodeLessonPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
