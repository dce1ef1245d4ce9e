package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coursio/streams-ms-go/internal/api_context"
	"github.com/coursio/streams-ms-go/internal/db"
	"github.com/coursio/streams-ms-go/internal/mock"
	"github.com/coursio/streams-ms-go/internal/model"
	"github.com/coursio/streams-ms-go/internal/usecase/lesson"
)

func newStreamRequest(t *testing.T, lessonID, filename, rawQuery string, userID *db.UUID, role model.Role) *http.Request {
	t.Helper()
	target := "/stream/" + lessonID + "/" + filename
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "192.0.2.1:51234"

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("lessonID", lessonID)
	rctx.URLParams.Add("filename", filename)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != nil {
		ctx = context.WithValue(ctx, api_context.AuthUserIDKey, *userID)
		ctx = context.WithValue(ctx, api_context.AuthRoleKey, role)
	}
	return req.WithContext(ctx)
}

func TestStreamHandler_SignedEntry(t *testing.T) {
	lessonID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	userID := db.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	manifest := lessonID.String() + ".m3u8"
	objectKey := "courses/hls/" + lessonID.String() + "/" + manifest

	mockSvc := &mock.StreamAuthorizer{}
	mockSvc.Out.ObjectKey = objectKey
	strg := &mock.Storage{ExistsOut: true, GetOut: mock.NewReadSeekCloser("#EXTM3U\n")}
	handlerFn := StreamHandler(mockSvc, strg, "private")

	query := "expires=1700000000&ip=192.0.2.1&signature=deadbeef"
	req := newStreamRequest(t, lessonID.String(), manifest, query, &userID, model.RoleStudent)
	rec := httptest.NewRecorder()

	handlerFn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d (body=%q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.apple.mpegurl" {
		t.Errorf("Content-Type = %q; want %q", ct, "application/vnd.apple.mpegurl")
	}
	if got := rec.Body.String(); got != "#EXTM3U\n" {
		t.Errorf("body = %q; want %q", got, "#EXTM3U\n")
	}
	if strg.GetKey != objectKey {
		t.Errorf("storage got key = %q; want %q", strg.GetKey, objectKey)
	}

	in := mockSvc.In
	if !in.HasSignature {
		t.Error("expected the signed-entry path")
	}
	if in.Signature != "deadbeef" || in.SignedIP != "192.0.2.1" || in.Expires != 1700000000 {
		t.Errorf("signature params = (%q, %q, %d); want (%q, %q, %d)",
			in.Signature, in.SignedIP, in.Expires, "deadbeef", "192.0.2.1", int64(1700000000))
	}
	if in.UserID != userID || in.LessonID != lessonID || in.Filename != manifest {
		t.Errorf("identity params = (%s, %s, %q)", in.UserID, in.LessonID, in.Filename)
	}
	if in.ClientIP != "192.0.2.1" {
		t.Errorf("client IP = %q; want %q", in.ClientIP, "192.0.2.1")
	}
}

func TestStreamHandler_SegmentFetch(t *testing.T) {
	lessonID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	userID := db.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	objectKey := "courses/hls/" + lessonID.String() + "/480p_000.ts"

	mockSvc := &mock.StreamAuthorizer{}
	mockSvc.Out.ObjectKey = objectKey
	strg := &mock.Storage{ExistsOut: true, GetOut: mock.NewReadSeekCloser("segment-bytes")}
	handlerFn := StreamHandler(mockSvc, strg, "private")

	req := newStreamRequest(t, lessonID.String(), "480p_000.ts", "", &userID, model.RoleStudent)
	rec := httptest.NewRecorder()

	handlerFn(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d (body=%q)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "video/mp2t" {
		t.Errorf("Content-Type = %q; want %q", ct, "video/mp2t")
	}
	if mockSvc.In.HasSignature {
		t.Error("bare fetch must not take the signed-entry path")
	}
	if got := rec.Body.String(); got != "segment-bytes" {
		t.Errorf("body = %q; want %q", got, "segment-bytes")
	}
}

func TestStreamHandler_Errors(t *testing.T) {
	lessonID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	userID := db.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	manifest := lessonID.String() + ".m3u8"

	tests := []struct {
		name             string
		svcErr           error
		wantStatus       int
		wantBodyContains string
	}{
		{"lesson not found", lesson.ErrLessonNotFound, http.StatusNotFound, "Lesson not found"},
		{"object not found", lesson.ErrObjectNotFound, http.StatusNotFound, "File not found"},
		{"not ready", lesson.ErrLessonNotReady, http.StatusForbidden, "not ready"},
		{"invalid signature", lesson.ErrInvalidSignature, http.StatusForbidden, "Invalid video URL signature"},
		{"expired signature", lesson.ErrExpiredSignature, http.StatusForbidden, "expired"},
		{"ip mismatch", lesson.ErrIPMismatch, http.StatusForbidden, "different network"},
		{"not enrolled", lesson.ErrNotEnrolled, http.StatusForbidden, "not enrolled"},
		{"session expired", lesson.ErrSessionExpired, http.StatusForbidden, "please reload the page"},
		{"internal", lesson.ErrInternal, http.StatusInternalServerError, "could not authorize stream"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.StreamAuthorizer{Err: tc.svcErr}
			strg := &mock.Storage{}
			handlerFn := StreamHandler(mockSvc, strg, "private")

			req := newStreamRequest(t, lessonID.String(), manifest, "", &userID, model.RoleStudent)
			rec := httptest.NewRecorder()

			handlerFn(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d (body=%q)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantBodyContains) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodyContains)
			}
			if strg.GetCalled {
				t.Error("storage must not be read when authorization fails")
			}
		})
	}
}

func TestStreamHandler_UnauthenticatedAndBadInput(t *testing.T) {
	lessonID := db.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	userID := db.UUID(uuid.MustParse("11111111-2222-3333-4444-555555555555"))
	manifest := lessonID.String() + ".m3u8"

	t.Run("no authenticated user", func(t *testing.T) {
		mockSvc := &mock.StreamAuthorizer{}
		handlerFn := StreamHandler(mockSvc, &mock.Storage{}, "private")

		req := newStreamRequest(t, lessonID.String(), manifest, "", nil, model.RoleStudent)
		rec := httptest.NewRecorder()

		handlerFn(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
		if mockSvc.Called {
			t.Error("service must not run for anonymous requests")
		}
	})

	t.Run("malformed lesson ID", func(t *testing.T) {
		mockSvc := &mock.StreamAuthorizer{}
		handlerFn := StreamHandler(mockSvc, &mock.Storage{}, "private")

		req := newStreamRequest(t, "not-a-uuid", manifest, "", &userID, model.RoleStudent)
		rec := httptest.NewRecorder()

		handlerFn(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("unparsable expires on signed request", func(t *testing.T) {
		mockSvc := &mock.StreamAuthorizer{}
		handlerFn := StreamHandler(mockSvc, &mock.Storage{}, "private")

		req := newStreamRequest(t, lessonID.String(), manifest, "expires=soon&ip=192.0.2.1&signature=deadbeef", &userID, model.RoleStudent)
		rec := httptest.NewRecorder()

		handlerFn(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusForbidden)
		}
		if mockSvc.Called {
			t.Error("service must not run with a malformed descriptor")
		}
	})

	t.Run("object missing from storage", func(t *testing.T) {
		mockSvc := &mock.StreamAuthorizer{}
		mockSvc.Out.ObjectKey = "courses/hls/" + lessonID.String() + "/" + manifest
		strg := &mock.Storage{ExistsOut: false}
		handlerFn := StreamHandler(mockSvc, strg, "private")

		req := newStreamRequest(t, lessonID.String(), manifest, "", &userID, model.RoleStudent)
		rec := httptest.NewRecorder()

		handlerFn(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
		if strg.GetCalled {
			t.Error("GetFile must not run when the object is missing")
		}
	})
}
