package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/cache"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/config"
)

// tokenRefreshMargin renews the cached token before it actually expires so
// a send never races the expiry.
const tokenRefreshMargin = 5 * time.Minute

// GraphTokenProvider yields a valid Microsoft Graph access token.
type GraphTokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type graphTokenSource struct {
	tenantID     string
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	clock        cache.Clock
	logger       zerolog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewGraphTokenSource creates a client-credentials token source with an
// in-process cache.
func NewGraphTokenSource(cfg *config.Config, httpClient *http.Client, clock cache.Clock, logger zerolog.Logger) GraphTokenProvider {
	return &graphTokenSource{
		tenantID:     cfg.GraphTenantID,
		clientID:     cfg.GraphClientID,
		clientSecret: cfg.GraphClientSecret,
		tokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.GraphTenantID),
		httpClient:   httpClient,
		clock:        clock,
		logger:       logger.With().Str("service", "graph_token").Logger(),
	}
}

func (s *graphTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if s.token != "" && now.Before(s.expiresAt.Add(-tokenRefreshMargin)) {
		return s.token, nil
	}

	token, expiresIn, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	s.token = token
	s.expiresAt = now.Add(time.Duration(expiresIn) * time.Second)
	s.logger.Info().Time("expires_at", s.expiresAt).Msg("Acquired Graph access token")
	return s.token, nil
}

func (s *graphTokenSource) fetch(ctx context.Context) (string, int, error) {
	form := url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", 0, apperr.Wrap(apperr.KindUpstreamService, err, "Failed to reach Microsoft identity platform")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		s.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("Token request rejected")
		ae := apperr.New(apperr.KindUpstreamAuth, "Failed to authenticate with Microsoft Graph")
		ae.Debug = map[string]string{
			"status":   fmt.Sprintf("%d", resp.StatusCode),
			"clientId": truncateID(s.clientID),
			"tenantId": truncateID(s.tenantID),
		}
		return "", 0, ae
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", 0, apperr.Wrap(apperr.KindUpstreamService, err, "Malformed token response")
	}
	if payload.AccessToken == "" {
		return "", 0, apperr.New(apperr.KindUpstreamAuth, "Token response contained no access token")
	}
	return payload.AccessToken, payload.ExpiresIn, nil
}

// truncateID keeps only an identifying prefix for debug output.
func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "..."
}
