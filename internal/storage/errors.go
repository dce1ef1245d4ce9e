package storage

import (
	"fmt"

	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return lesson.ErrObjectNotFound
	case "NoSuchBucket":
		return lesson.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return lesson.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", lesson.ErrInternal, err)
	}
}
