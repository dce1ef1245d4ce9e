package signer

import (
	"testing"
	"time"

	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/google/uuid"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	s := NewHMACSigner("super-secret")
	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	exp := time.Now().Add(time.Hour).Unix()

	sig := s.Sign(id, "master.m3u8", "203.0.113.7", exp)
	if sig == "" {
		t.Fatal("expected non-empty signature")
	}
	if !s.Verify(id, "master.m3u8", "203.0.113.7", exp, sig) {
		t.Error("valid signature rejected")
	}
}

func TestVerify_RejectsTampering(t *testing.T) {
	s := NewHMACSigner("super-secret")
	id := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	otherID := db.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	exp := time.Now().Add(time.Hour).Unix()
	sig := s.Sign(id, "master.m3u8", "203.0.113.7", exp)

	cases := []struct {
		name string
		ok   bool
	}{
		{"lesson id", s.Verify(otherID, "master.m3u8", "203.0.113.7", exp, sig)},
		{"filename", s.Verify(id, "segment0.ts", "203.0.113.7", exp, sig)},
		{"ip", s.Verify(id, "master.m3u8", "198.51.100.1", exp, sig)},
		{"expiry", s.Verify(id, "master.m3u8", "203.0.113.7", exp+1, sig)},
		{"signature byte", s.Verify(id, "master.m3u8", "203.0.113.7", exp, flipLastByte(sig))},
	}
	for _, c := range cases {
		if c.ok {
			t.Errorf("tampered %s accepted", c.name)
		}
	}
}

func TestVerify_DifferentSecret(t *testing.T) {
	id := db.NewUUID()
	exp := time.Now().Add(time.Hour).Unix()
	sig := NewHMACSigner("secret-a").Sign(id, "master.m3u8", "203.0.113.7", exp)

	if NewHMACSigner("secret-b").Verify(id, "master.m3u8", "203.0.113.7", exp, sig) {
		t.Error("signature from another secret accepted")
	}
}

func flipLastByte(sig string) string {
	b := []byte(sig)
	if b[len(b)-1] == 'a' {
		b[len(b)-1] = 'b'
	} else {
		b[len(b)-1] = 'a'
	}
	return string(b)
}
