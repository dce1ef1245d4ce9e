package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/port"
)

// HMACSigner signs playback URLs with HMAC-SHA256 over a canonical string of
// the fields the signature must protect. It is a pure function of its inputs
// and the secret; nothing is persisted.
type HMACSigner struct {
	secret []byte
}

// compile-time check: *HMACSigner must satisfy port.URLSigner
var _ port.URLSigner = (*HMACSigner)(nil)

func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

func (s *HMACSigner) Sign(lessonID db.UUID, filename, ip string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(canonical(lessonID, filename, ip, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *HMACSigner) Verify(lessonID db.UUID, filename, ip string, expires int64, signature string) bool {
	want := s.Sign(lessonID, filename, ip, expires)
	return hmac.Equal([]byte(want), []byte(signature))
}

func canonical(lessonID db.UUID, filename, ip string, expires int64) string {
	return fmt.Sprintf("%s|%s|%s|%d", lessonID, filename, ip, expires)
}
