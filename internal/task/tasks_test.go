package task

import (
	"testing"
)

func TestTranscodeLessonTask_RoundTrip(t *testing.T) {
	tk, err := NewTranscodeLessonTask("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", "videos/lesson/source.mp4")
	if err != nil {
		t.Fatalf("NewTranscodeLessonTask: %v", err)
	}
	if tk.Type() != TypeTranscodeLesson {
		t.Errorf("task type = %q; want %q", tk.Type(), TypeTranscodeLesson)
	}

	p, err := ParseTranscodeLessonPayload(tk)
	if err != nil {
		t.Fatalf("ParseTranscodeLessonPayload: %v", err)
	}
	if p.LessonID != "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" {
		t.Errorf("lesson id = %q", p.LessonID)
	}
	if p.SourceKey != "videos/lesson/source.mp4" {
		t.Errorf("source key = %q", p.SourceKey)
	}
}
