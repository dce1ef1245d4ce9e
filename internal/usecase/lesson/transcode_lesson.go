package lesson

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/port"
	"golang.org/x/net/context"
)

type lessonTranscoderSrv struct {
	repo   port.LessonRepository
	strg   port.Storage
	tc     port.Transcoder
	bucket string
}

func NewLessonTranscoder(repo port.LessonRepository, strg port.Storage, tc port.Transcoder, bucket string) port.LessonTranscoder {
	return &lessonTranscoderSrv{repo, strg, tc, bucket}
}

// TranscodeLesson runs the whole encode of one lesson on the worker: download
// the source, produce the HLS ladder, upload the package, probe the duration,
// then record the terminal status. Whatever goes wrong, the lesson always
// ends in a terminal state: failed encodes must be inspectable, never stuck
// at "processing".
func (s *lessonTranscoderSrv) TranscodeLesson(ctx context.Context, in port.TranscodeLessonInput) error {
	lesson, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLessonNotFound
		}
		return err
	}

	lesson.ProcessingStatus = model.ProcessingStatusProcessing
	if err := s.repo.Update(ctx, lesson); err != nil {
		return fmt.Errorf("failed marking lesson as processing: %w", err)
	}

	if err := s.run(ctx, lesson, in.SourceKey); err != nil {
		s.markFailed(ctx, lesson, err)
		return err
	}

	log.Printf("lesson #%s transcoded, manifest at %q", lesson.ID, *lesson.VideoHLSPath)
	return nil
}

func (s *lessonTranscoderSrv) run(ctx context.Context, lesson *model.Lesson, sourceKey string) error {
	workDir, err := os.MkdirTemp("", "transcode-"+lesson.ID.String()+"-*")
	if err != nil {
		return fmt.Errorf("could not create work dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(workDir)
	}()

	srcPath, err := s.downloadSource(ctx, sourceKey, workDir)
	if err != nil {
		return err
	}

	outDir := filepath.Join(workDir, "hls")
	manifestName, err := s.tc.TranscodeToHLS(ctx, srcPath, outDir, lesson.ID.String())
	if err != nil {
		return err
	}

	if err := s.uploadPackage(ctx, lesson, outDir); err != nil {
		return err
	}

	seconds, err := s.tc.ProbeDurationSeconds(ctx, srcPath)
	if err != nil {
		return err
	}
	// round half up: a 90s source reads as 2 minutes
	minutes := int(math.Round(seconds / 60))

	hlsPath := HLSObjectKey(lesson.ID, manifestName)
	lesson.VideoHLSPath = &hlsPath
	lesson.DurationMinutes = &minutes
	lesson.FailureMessage = nil
	lesson.ProcessingStatus = model.ProcessingStatusCompleted
	if err := s.repo.Update(ctx, lesson); err != nil {
		return fmt.Errorf("failed updating lesson: %w", err)
	}
	return nil
}

func (s *lessonTranscoderSrv) downloadSource(ctx context.Context, sourceKey, workDir string) (string, error) {
	reader, err := s.strg.GetFile(ctx, s.bucket, sourceKey)
	if err != nil {
		return "", fmt.Errorf("failed reading source %q: %w", sourceKey, err)
	}
	defer func(reader io.ReadSeekCloser) {
		_ = reader.Close()
	}(reader)

	srcPath := filepath.Join(workDir, "source"+filepath.Ext(sourceKey))
	f, err := os.Create(srcPath)
	if err != nil {
		return "", fmt.Errorf("could not create source copy: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("could not copy source locally: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return srcPath, nil
}

func (s *lessonTranscoderSrv) uploadPackage(ctx context.Context, lesson *model.Lesson, outDir string) error {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return fmt.Errorf("could not read output dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, err := os.Open(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("could not open artifact %q: %w", entry.Name(), err)
		}
		key := HLSObjectKey(lesson.ID, entry.Name())
		err = s.strg.SaveFile(ctx, s.bucket, key, f, -1, map[string]string{
			"Content-Type": ContentTypeForFile(entry.Name()),
		})
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("failed to save artifact %q inside bucket %q: %w", key, s.bucket, err)
		}
	}
	return nil
}

// markFailed records the terminal failed state. It runs on a fresh context,
// detached from the (possibly already cancelled) task context, so a timed-out
// encode can still write its status.
func (s *lessonTranscoderSrv) markFailed(ctx context.Context, lesson *model.Lesson, cause error) {
	msg := cause.Error()
	lesson.FailureMessage = &msg
	lesson.VideoHLSPath = nil
	lesson.ProcessingStatus = model.ProcessingStatusFailed
	if err := s.repo.Update(context.Background(), lesson); err != nil {
		log.Printf("warning: could not mark lesson #%s as failed: %v", lesson.ID, err)
	}
}
