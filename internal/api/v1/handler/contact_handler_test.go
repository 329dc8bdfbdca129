package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func newContactMux(notifications *fakeNotifications) *http.ServeMux {
	validate := validator.New(validator.WithRequiredStructEnabled())
	h := NewContactHandler(notifications, validate, zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestContactSubmission(t *testing.T) {
	notifications := &fakeNotifications{ref: "ref-123"}
	mux := newContactMux(notifications)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"training": "Azure Fundamentals",
		"language": "en"
	}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Reference != "ref-123" || body.Message == "" {
		t.Fatalf("unexpected response %+v", body)
	}
	if notifications.last.Name != "Jane Doe" || notifications.last.Training != "Azure Fundamentals" {
		t.Fatalf("unexpected dispatched request %+v", notifications.last)
	}
}

func TestContactMissingNameIsBadRequest(t *testing.T) {
	mux := newContactMux(&fakeNotifications{ref: "r"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"","email":"a@b.com"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Bad Request" {
		t.Fatalf("unexpected error %q", body["error"])
	}
}

func TestContactInvalidEmailIsBadRequest(t *testing.T) {
	mux := newContactMux(&fakeNotifications{ref: "r"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Jane","email":"not-an-email","training":"X"}`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", rec.Code)
	}
}

func TestContactMalformedJSONIsBadRequest(t *testing.T) {
	mux := newContactMux(&fakeNotifications{ref: "r"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{`))
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}
