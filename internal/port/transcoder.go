package port

import "context"

// Transcoder converts a source video into a multi-rendition HLS package.
type Transcoder interface {
	// TranscodeToHLS encodes inputPath into outputDir and returns the name of
	// the master manifest it wrote there, {name}.m3u8. Blocks until done or
	// ctx is cancelled.
	TranscodeToHLS(ctx context.Context, inputPath, outputDir, name string) (string, error)
	// ProbeDurationSeconds returns the duration of the source media.
	ProbeDurationSeconds(ctx context.Context, inputPath string) (float64, error)
}
