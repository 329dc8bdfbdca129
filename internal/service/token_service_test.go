package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
)

func newTestTokenSource(t *testing.T, handler http.HandlerFunc, clock func() time.Time) (*graphTokenSource, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &graphTokenSource{
		tenantID:     "11111111-2222-3333-4444-555555555555",
		clientID:     "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		clientSecret: "secret",
		tokenURL:     srv.URL,
		httpClient:   srv.Client(),
		clock:        clock,
		logger:       zerolog.Nop(),
	}, srv
}

func TestTokenIsCachedUntilRefreshMargin(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	requests := 0
	src, _ := newTestTokenSource(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "client_credentials" {
			t.Errorf("expected client_credentials grant, got %q", got)
		}
		if got := r.Form.Get("scope"); got != "https://graph.microsoft.com/.default" {
			t.Errorf("unexpected scope %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}, func() time.Time { return now })

	tok, err := src.Token(context.Background())
	if err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if tok != "tok-1" {
		t.Fatalf("expected tok-1, got %q", tok)
	}

	// Still well inside the refresh margin: cached token is reused.
	now = now.Add(30 * time.Minute)
	if _, err := src.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if requests != 1 {
		t.Fatalf("expected 1 token request, got %d", requests)
	}

	// Within 5 minutes of expiry the token is refreshed early.
	now = now.Add(26 * time.Minute)
	if _, err := src.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if requests != 2 {
		t.Fatalf("expected early refresh, got %d requests", requests)
	}
}

func TestTokenRejectionIsUpstreamAuth(t *testing.T) {
	src, _ := newTestTokenSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}, time.Now)

	_, err := src.Token(context.Background())
	if apperr.KindOf(err) != apperr.KindUpstreamAuth {
		t.Fatalf("expected UpstreamAuth, got %v", err)
	}
	debug := apperr.DebugOf(err)
	if debug["status"] != "401" {
		t.Errorf("expected status 401 in debug, got %v", debug)
	}
	if debug["clientId"] != "aaaaaaaa..." {
		t.Errorf("expected truncated client ID, got %q", debug["clientId"])
	}
}

func TestEmptyAccessTokenIsUpstreamAuth(t *testing.T) {
	src, _ := newTestTokenSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"expires_in":3600}`))
	}, time.Now)

	_, err := src.Token(context.Background())
	if apperr.KindOf(err) != apperr.KindUpstreamAuth {
		t.Fatalf("expected UpstreamAuth for missing token, got %v", err)
	}
}
