package mock

import (
	"context"
	"io"
	"strings"

	"github.com/coursio/streams-ms-go/internal/port"
)

type nopReadSeekCloser struct {
	io.ReadSeeker
}

func (nopReadSeekCloser) Close() error { return nil }

// NewReadSeekCloser wraps static content for storage GetFile outputs.
func NewReadSeekCloser(content string) io.ReadSeekCloser {
	return nopReadSeekCloser{strings.NewReader(content)}
}

// Storage implements the storage interface for tests.
type Storage struct {
	StatInfoOut port.FileInfo
	GetOut      io.ReadSeekCloser
	ExistsOut   bool

	// captured inputs
	SavedKeys []string
	GetKey    string
	ExistsKey string

	// errors
	InitBucketErr error
	StatErr       error
	RemoveErr     error
	GetErr        error
	SaveErr       error
	ExistsErr     error

	// call flags
	InitBucketCalled bool
	StatCalled       bool
	RemoveCalled     bool
	GetCalled        bool
	SaveCalled       bool
	ExistsCalled     bool
}

func (s *Storage) InitBucket(bucket string) error {
	s.InitBucketCalled = true
	return s.InitBucketErr
}

func (s *Storage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	s.ExistsCalled = true
	s.ExistsKey = fileKey
	if s.ExistsErr != nil {
		return false, s.ExistsErr
	}
	return s.ExistsOut, nil
}

func (s *Storage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	s.StatCalled = true
	if s.StatErr != nil {
		return port.FileInfo{}, s.StatErr
	}
	return s.StatInfoOut, nil
}

func (s *Storage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	s.RemoveCalled = true
	return s.RemoveErr
}

func (s *Storage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	s.GetCalled = true
	s.GetKey = fileKey
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if s.GetOut != nil {
		return s.GetOut, nil
	}
	return NewReadSeekCloser(""), nil
}

func (s *Storage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	s.SaveCalled = true
	s.SavedKeys = append(s.SavedKeys, fileKey)
	if s.SaveErr != nil {
		return s.SaveErr
	}
	_, _ = io.Copy(io.Discard, reader)
	return nil
}
