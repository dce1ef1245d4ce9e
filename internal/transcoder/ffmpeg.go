package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/grafov/m3u8"
)

// FFmpegTranscoder shells out to ffmpeg/ffprobe, encoding one rendition per
// invocation and composing the master playlist itself.
type FFmpegTranscoder struct {
	ffmpegPath  string
	ffprobePath string
	ladder      []Rendition
}

// compile-time check: *FFmpegTranscoder must satisfy port.Transcoder
var _ port.Transcoder = (*FFmpegTranscoder)(nil)

func NewFFmpegTranscoder(ffmpegPath, ffprobePath string) *FFmpegTranscoder {
	return &FFmpegTranscoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		ladder:      DefaultLadder,
	}
}

// TranscodeToHLS encodes inputPath into outputDir, one sub-manifest and
// segment set per ladder rendition, and writes the master manifest as
// {name}.m3u8. It blocks for the whole encode and honours ctx cancellation
// through the spawned processes.
func (t *FFmpegTranscoder) TranscodeToHLS(ctx context.Context, inputPath, outputDir, name string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create output dir: %w", err)
	}

	for _, r := range t.ladder {
		log.Printf("encoding rendition %s (%s @ %dkbps)...", r.Name, r.Resolution(), r.VideoBitrate)
		if err := t.encodeRendition(ctx, inputPath, outputDir, r); err != nil {
			return "", fmt.Errorf("rendition %s: %w", r.Name, err)
		}
	}

	manifestName := name + ".m3u8"
	if err := t.writeMasterPlaylist(filepath.Join(outputDir, manifestName)); err != nil {
		return "", fmt.Errorf("master playlist: %w", err)
	}
	return manifestName, nil
}

func (t *FFmpegTranscoder) encodeRendition(ctx context.Context, inputPath, outputDir string, r Rendition) error {
	args := []string{
		"-hide_banner", "-y",
		"-i", inputPath,
		"-vf", fmt.Sprintf("scale=w=%d:h=%d:force_original_aspect_ratio=decrease", r.Width, r.Height),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-b:v", fmt.Sprintf("%dk", r.VideoBitrate),
		"-maxrate", fmt.Sprintf("%dk", r.VideoBitrate),
		"-bufsize", fmt.Sprintf("%dk", r.VideoBitrate*2),
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", r.AudioBitrate),
		"-f", "hls",
		"-hls_time", "6",
		"-hls_playlist_type", "vod",
		"-hls_list_size", "0",
		"-hls_segment_filename", filepath.Join(outputDir, r.Name+"_%03d.ts"),
		filepath.Join(outputDir, r.Name+".m3u8"),
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.String()))
	}
	return nil
}

// writeMasterPlaylist emits the master manifest referencing every rendition's
// sub-manifest with its advertised bandwidth and resolution.
func (t *FFmpegTranscoder) writeMasterPlaylist(path string) error {
	master := m3u8.NewMasterPlaylist()
	for _, r := range t.ladder {
		master.Append(r.Name+".m3u8", nil, m3u8.VariantParams{
			Bandwidth:  r.Bandwidth(),
			Resolution: r.Resolution(),
			Name:       r.Name,
		})
	}
	return os.WriteFile(path, master.Encode().Bytes(), 0o644)
}

// ProbeDurationSeconds asks ffprobe for the container duration of the source.
func (t *FFmpegTranscoder) ProbeDurationSeconds(ctx context.Context, inputPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeDuration(string(out))
}

func parseProbeDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, fmt.Errorf("ffprobe returned no duration")
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q: %w", s, err)
	}
	return d, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
