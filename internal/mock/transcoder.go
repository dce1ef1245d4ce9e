package mock

import (
	"context"
	"os"
	"path/filepath"
)

// Transcoder implements the transcoder for tests. When TranscodeErr is nil it
// writes ArtifactFiles (or a minimal manifest) into the output directory so
// the upload step has something to walk.
type Transcoder struct {
	ArtifactFiles map[string]string
	DurationOut   float64

	TranscodeErr error
	ProbeErr     error

	TranscodeCalled bool
	ProbeCalled     bool
	InputPath       string
	OutputDir       string
}

func (t *Transcoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir, name string) (string, error) {
	t.TranscodeCalled = true
	t.InputPath = inputPath
	t.OutputDir = outputDir
	if t.TranscodeErr != nil {
		return "", t.TranscodeErr
	}

	manifestName := name + ".m3u8"
	files := t.ArtifactFiles
	if files == nil {
		files = map[string]string{manifestName: "#EXTM3U\n"}
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	for fname, content := range files {
		if err := os.WriteFile(filepath.Join(outputDir, fname), []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return manifestName, nil
}

func (t *Transcoder) ProbeDurationSeconds(ctx context.Context, inputPath string) (float64, error) {
	t.ProbeCalled = true
	if t.ProbeErr != nil {
		return 0, t.ProbeErr
	}
	return t.DurationOut, nil
}
