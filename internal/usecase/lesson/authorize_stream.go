package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/port"
)

type streamAuthorizerSrv struct {
	repo   port.LessonRepository
	cache  port.Cache
	signer port.URLSigner
	now    func() time.Time
}

func NewStreamAuthorizer(repo port.LessonRepository, cache port.Cache, signer port.URLSigner) port.StreamAuthorizer {
	return &streamAuthorizerSrv{repo, cache, signer, time.Now}
}

// AuthorizeStream runs the two-phase protocol gating every manifest and
// segment request. A request carrying a signature is a signed entry: the
// descriptor is verified, the deferred enrollment/ownership check runs, and
// on success the session's IP is cached. A request without one only passes
// if a live cache entry for (user, lesson) names the same IP.
func (s *streamAuthorizerSrv) AuthorizeStream(ctx context.Context, in port.AuthorizeStreamInput) (port.AuthorizeStreamOutput, error) {
	if !IsSafeFilename(in.Filename) {
		return port.AuthorizeStreamOutput{}, ErrObjectNotFound
	}

	lesson, err := s.repo.GetByID(ctx, in.LessonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.AuthorizeStreamOutput{}, ErrLessonNotFound
		}
		return port.AuthorizeStreamOutput{}, err
	}
	// partial packages are never servable
	if lesson.ProcessingStatus != model.ProcessingStatusCompleted || lesson.VideoHLSPath == nil {
		return port.AuthorizeStreamOutput{}, ErrLessonNotReady
	}

	if in.HasSignature {
		err = s.authorizeSignedEntry(ctx, in)
	} else {
		err = s.authorizeSubResource(ctx, in)
	}
	if err != nil {
		return port.AuthorizeStreamOutput{}, err
	}

	return port.AuthorizeStreamOutput{ObjectKey: HLSObjectKey(in.LessonID, in.Filename)}, nil
}

func (s *streamAuthorizerSrv) authorizeSignedEntry(ctx context.Context, in port.AuthorizeStreamInput) error {
	if !s.signer.Verify(in.LessonID, in.Filename, in.SignedIP, in.Expires, in.Signature) {
		return ErrInvalidSignature
	}
	if s.now().Unix() > in.Expires {
		return ErrExpiredSignature
	}
	// the descriptor is IP-bound, not user-bound: a link shared across
	// networks fails here
	if in.ClientIP != in.SignedIP {
		return ErrIPMismatch
	}

	allowed, err := s.isAllowed(ctx, in)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrNotEnrolled
	}

	s.cache.SetStreamAccess(ctx, in.UserID, in.LessonID, in.ClientIP, StreamTTL)
	return nil
}

func (s *streamAuthorizerSrv) authorizeSubResource(ctx context.Context, in port.AuthorizeStreamInput) error {
	ip, err := s.cache.GetStreamAccess(ctx, in.UserID, in.LessonID)
	if err != nil {
		return fmt.Errorf("failed reading access cache: %w", err)
	}
	if ip == "" || ip != in.ClientIP {
		return ErrSessionExpired
	}
	return nil
}

func (s *streamAuthorizerSrv) isAllowed(ctx context.Context, in port.AuthorizeStreamInput) (bool, error) {
	if in.Role.CanBypassEnrollment() {
		return true, nil
	}

	authz, err := s.repo.GetStreamAuthz(ctx, in.LessonID)
	if err != nil {
		return false, fmt.Errorf("failed fetching authorization facts: %w", err)
	}
	if authz.CreatorID == in.UserID {
		return true, nil
	}

	return s.repo.IsEnrolled(ctx, in.UserID, authz.CourseID)
}
