package storage

import (
	"context"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/coursio/streams-ms-go/internal/port"
	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

// LocalStorage keeps artifacts on a private directory tree outside the web
// root. Buckets map to top-level directories, object keys to relative paths.
type LocalStorage struct {
	root string
}

// compile-time check: *LocalStorage must satisfy port.Storage
var _ port.Storage = (*LocalStorage)(nil)

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{root: root}, nil
}

func (s *LocalStorage) InitBucket(bucket string) error {
	return os.MkdirAll(filepath.Join(s.root, bucket), 0o755)
}

func (s *LocalStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	_, err := os.Stat(s.path(bucket, fileKey))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	info, err := os.Stat(s.path(bucket, fileKey))
	if os.IsNotExist(err) {
		return port.FileInfo{}, lesson.ErrObjectNotFound
	}
	if err != nil {
		return port.FileInfo{}, err
	}
	return port.FileInfo{
		SizeBytes:   info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(fileKey)),
	}, nil
}

func (s *LocalStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	log.Printf("removing file %q from bucket %q...", fileKey, bucket)

	err := os.Remove(s.path(bucket, fileKey))
	if os.IsNotExist(err) {
		return lesson.ErrObjectNotFound
	}
	return err
}

func (s *LocalStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	f, err := os.Open(s.path(bucket, fileKey))
	if os.IsNotExist(err) {
		return nil, lesson.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *LocalStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	log.Printf("saving file %q into bucket %q...", fileKey, bucket)

	dest := s.path(bucket, fileKey)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// path joins bucket and key under the root, with the key normalised so a
// crafted "../" key can never escape the tree.
func (s *LocalStorage) path(bucket, fileKey string) string {
	clean := filepath.Clean("/" + strings.ReplaceAll(fileKey, "\\", "/"))
	return filepath.Join(s.root, bucket, clean)
}
