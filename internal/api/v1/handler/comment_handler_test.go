package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/service"
)

func newCommentMux(svc *fakeCommentService) *http.ServeMux {
	h := NewCommentHandler(svc, fakeMedia{}, testValidate, testLogger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, passthrough)
	return mux
}

func TestUpdateComment(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{})

	req := asUser(httptest.NewRequest(http.MethodPatch, "/comments/9", strings.NewReader(`{"content":"edited"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.CommentResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != 9 || resp.Content != "edited" {
		t.Fatalf("unexpected updated comment: %+v", resp)
	}
}

func TestUpdateCommentNotOwner(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{mutateErr: service.ErrNotCommentOwner})

	req := asUser(httptest.NewRequest(http.MethodPatch, "/comments/9", strings.NewReader(`{"content":"edited"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestUpdateCommentEmptyContent(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{})

	req := asUser(httptest.NewRequest(http.MethodPatch, "/comments/9", strings.NewReader(`{"content":""}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteComment(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{})

	req := asUser(httptest.NewRequest(http.MethodDelete, "/comments/9", nil), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestDeleteCommentNotFound(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{mutateErr: service.ErrCommentNotFound})

	req := asUser(httptest.NewRequest(http.MethodDelete, "/comments/9", nil), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteCommentNotOwner(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{mutateErr: service.ErrNotCommentOwner})

	req := asUser(httptest.NewRequest(http.MethodDelete, "/comments/9", nil), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCommentInvalidID(t *testing.T) {
	mux := newCommentMux(&fakeCommentService{})

	req := asUser(httptest.NewRequest(http.MethodDelete, "/comments/abc", nil), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
