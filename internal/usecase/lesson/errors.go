package lesson

import "errors"

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)

// Streaming-gate rejections. Each maps to a distinct client-visible 403/404
// reason; none of them is ever a server error.
var (
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrLessonNotReady   = errors.New("lesson video is not ready for streaming")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrExpiredSignature = errors.New("signature has expired")
	ErrIPMismatch       = errors.New("request IP does not match the authorised IP")
	ErrNotEnrolled      = errors.New("user is not allowed to stream this lesson")
	ErrSessionExpired   = errors.New("streaming session expired, reload the page")
)
