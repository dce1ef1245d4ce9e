package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/port"
)

type streamURLGetterSrv struct {
	repo    port.LessonRepository
	signer  port.URLSigner
	baseURL string
	now     func() time.Time
}

func NewStreamURLGetter(repo port.LessonRepository, signer port.URLSigner, baseURL string) port.StreamURLGetter {
	return &streamURLGetterSrv{repo, signer, baseURL, time.Now}
}

// GetStreamURL mints the signed manifest URL embedded into the lesson page.
// It is a pure function of (lesson, client IP, clock, secret). No enrollment
// check happens here; that is deferred to the streaming gate's first use.
func (s *streamURLGetterSrv) GetStreamURL(ctx context.Context, in port.GetStreamURLInput) (port.GetStreamURLOutput, error) {
	lesson, err := s.repo.GetByID(ctx, in.LessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.GetStreamURLOutput{}, ErrLessonNotFound
		}
		return port.GetStreamURLOutput{}, err
	}
	if lesson.ProcessingStatus != model.ProcessingStatusCompleted || lesson.VideoHLSPath == nil {
		return port.GetStreamURLOutput{}, ErrLessonNotReady
	}

	filename := ManifestFilename(lesson.ID)
	expiresAt := s.now().Add(StreamTTL)
	sig := s.signer.Sign(lesson.ID, filename, in.ClientIP, expiresAt.Unix())

	streamURL := fmt.Sprintf("%s/%s/%s?expires=%d&ip=%s&signature=%s",
		s.baseURL, lesson.ID, filename,
		expiresAt.Unix(), url.QueryEscape(in.ClientIP), sig,
	)

	return port.GetStreamURLOutput{URL: streamURL, ExpiresAt: expiresAt}, nil
}
