package mock

import (
	"context"

	"github.com/coursio/streams-ms-go/internal/port"
)

// TranscodeRequester implements port.TranscodeRequester for handler tests.
type TranscodeRequester struct {
	Err    error
	Called bool
	In     port.RequestTranscodeInput
}

func (m *TranscodeRequester) RequestTranscode(ctx context.Context, in port.RequestTranscodeInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// LessonTranscoder implements port.LessonTranscoder for handler tests.
type LessonTranscoder struct {
	Err    error
	Called bool
	In     port.TranscodeLessonInput
}

func (m *LessonTranscoder) TranscodeLesson(ctx context.Context, in port.TranscodeLessonInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// StreamURLGetter implements port.StreamURLGetter for handler tests.
type StreamURLGetter struct {
	Out    port.GetStreamURLOutput
	Err    error
	Called bool
	In     port.GetStreamURLInput
}

func (m *StreamURLGetter) GetStreamURL(ctx context.Context, in port.GetStreamURLInput) (port.GetStreamURLOutput, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return port.GetStreamURLOutput{}, m.Err
	}
	return m.Out, nil
}

// StreamAuthorizer implements port.StreamAuthorizer for handler tests.
type StreamAuthorizer struct {
	Out    port.AuthorizeStreamOutput
	Err    error
	Called bool
	In     port.AuthorizeStreamInput
}

func (m *StreamAuthorizer) AuthorizeStream(ctx context.Context, in port.AuthorizeStreamInput) (port.AuthorizeStreamOutput, error) {
	m.Called = true
	m.In = in
	if m.Err != nil {
		return port.AuthorizeStreamOutput{}, m.Err
	}
	return m.Out, nil
}
