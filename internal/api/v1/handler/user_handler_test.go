package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecourse/internal/api/v1/dto"
	"ecourse/internal/model"
)

func newUserMux(svc *fakeUserService) *http.ServeMux {
	h := NewUserHandler(svc, fakeMedia{}, testValidate, testLogger)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, passthrough)
	return mux
}

func registrationForm(t *testing.T, fields map[string]string, avatarName string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	if avatarName != "" {
		part, err := mw.CreateFormFile("avatar", avatarName)
		if err != nil {
			t.Fatalf("creating avatar part: %v", err)
		}
		if _, err := part.Write([]byte("png-bytes")); err != nil {
			t.Fatalf("writing avatar part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestCreateUser(t *testing.T) {
	mux := newUserMux(&fakeUserService{})

	body, contentType := registrationForm(t, map[string]string{
		"username": "gopher",
		"email":    "gopher@example.com",
		"password": "secret123",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(mux, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Username != "gopher" || resp.Email != "gopher@example.com" {
		t.Fatalf("unexpected created user: %+v", resp)
	}
}

func TestCreateUserWithAvatar(t *testing.T) {
	mux := newUserMux(&fakeUserService{})

	body, contentType := registrationForm(t, map[string]string{
		"username": "gopher",
		"email":    "gopher@example.com",
		"password": "secret123",
	}, "me.png")
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(mux, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AvatarURL == "" {
		t.Fatal("expected a resolved avatar URL")
	}
}

func TestCreateUserMissingFields(t *testing.T) {
	mux := newUserMux(&fakeUserService{})

	body, contentType := registrationForm(t, map[string]string{"username": "gopher"}, "")
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(mux, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetCurrentUser(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: 7, Username: "gopher", Email: "gopher@example.com", Avatar: "avatars/7/me.png"}}
	mux := newUserMux(svc)

	req := asUser(httptest.NewRequest(http.MethodGet, "/users/current-user", nil), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != 7 || resp.AvatarURL != "https://media.test/avatars/7/me.png" {
		t.Fatalf("unexpected current user: %+v", resp)
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: 7, Username: "gopher", Email: "gopher@example.com"}}
	mux := newUserMux(svc)

	req := asUser(httptest.NewRequest(http.MethodPatch, "/users/current-user", strings.NewReader(`{"first_name":"Go","email":"new@example.com"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updateCalls != 1 {
		t.Fatalf("expected one update call, got %d", svc.updateCalls)
	}
	if svc.gotUpdate.FirstName == nil || *svc.gotUpdate.FirstName != "Go" {
		t.Fatalf("first_name not passed through: %+v", svc.gotUpdate)
	}
	if svc.gotUpdate.LastName != nil {
		t.Fatal("unsubmitted fields must stay nil")
	}

	var resp dto.UserResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.FirstName != "Go" || resp.Email != "new@example.com" {
		t.Fatalf("unexpected updated user: %+v", resp)
	}
}

func TestUpdateCurrentUserAvatar(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: 7, Username: "gopher"}}
	mux := newUserMux(svc)

	req := asUser(httptest.NewRequest(http.MethodPatch, "/users/current-user", strings.NewReader(`{"avatar":"avatars/7/new.png"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotUpdate.Avatar == nil || *svc.gotUpdate.Avatar != "avatars/7/new.png" {
		t.Fatalf("avatar not passed through: %+v", svc.gotUpdate)
	}

	var resp dto.UserResponseDTO
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AvatarURL != "https://media.test/avatars/7/new.png" {
		t.Fatalf("unexpected avatar URL: %q", resp.AvatarURL)
	}
}

func TestUpdateCurrentUserUnknownField(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: 7, Username: "gopher"}}
	mux := newUserMux(svc)

	req := asUser(httptest.NewRequest(http.MethodPatch, "/users/current-user", strings.NewReader(`{"username":"hijacked"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.updateCalls != 0 {
		t.Fatal("rejected payload must not reach the service")
	}
}

func TestUpdateCurrentUserInvalidEmail(t *testing.T) {
	svc := &fakeUserService{user: &model.User{ID: 7, Username: "gopher"}}
	mux := newUserMux(svc)

	req := asUser(httptest.NewRequest(http.MethodPatch, "/users/current-user", strings.NewReader(`{"email":"not-an-email"}`)), 7)
	rec := serve(mux, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.updateCalls != 0 {
		t.Fatal("rejected payload must not reach the service")
	}
}
