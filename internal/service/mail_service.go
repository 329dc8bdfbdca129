package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/apperr"
	"github.com/cloudevolvers/cloud-evolvers-train-sub006/internal/config"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// MailMessage is one outbound email.
type MailMessage struct {
	Subject  string
	HTMLBody string
	To       []string
	ReplyTo  string
}

// MailTransport sends a message through the configured mail provider. It is
// constructor-injected so tests can substitute a fake.
type MailTransport interface {
	Send(ctx context.Context, msg MailMessage) error
}

type graphTransport struct {
	tokens     GraphTokenProvider
	sender     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGraphTransport creates a MailTransport backed by the Microsoft Graph
// sendMail endpoint.
func NewGraphTransport(tokens GraphTokenProvider, sender string, httpClient *http.Client, logger zerolog.Logger) MailTransport {
	return &graphTransport{
		tokens:     tokens,
		sender:     sender,
		baseURL:    graphBaseURL,
		httpClient: httpClient,
		logger:     logger.With().Str("service", "graph_mail").Logger(),
	}
}

func (t *graphTransport) Send(ctx context.Context, msg MailMessage) error {
	token, err := t.tokens.Token(ctx)
	if err != nil {
		return err
	}

	type emailAddress struct {
		Address string `json:"address"`
	}
	type recipient struct {
		EmailAddress emailAddress `json:"emailAddress"`
	}
	payload := map[string]any{
		"message": map[string]any{
			"subject": msg.Subject,
			"body": map[string]any{
				"contentType": "HTML",
				"content":     msg.HTMLBody,
			},
			"toRecipients": func() []recipient {
				rs := make([]recipient, len(msg.To))
				for i, to := range msg.To {
					rs[i] = recipient{EmailAddress: emailAddress{Address: to}}
				}
				return rs
			}(),
		},
		"saveToSentItems": true,
	}
	if msg.ReplyTo != "" {
		payload["message"].(map[string]any)["replyTo"] = []recipient{{EmailAddress: emailAddress{Address: msg.ReplyTo}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/users/%s/sendMail", t.baseURL, t.sender)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstreamService, err, "Failed to reach Microsoft Graph")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		t.logger.Error().Int("status", resp.StatusCode).Str("body", string(raw)).Msg("Graph sendMail failed")
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return apperr.New(apperr.KindUpstreamAuth, "Microsoft Graph rejected the mail credentials")
		}
		return apperr.New(apperr.KindUpstreamService, "Microsoft Graph sendMail failed with status %d", resp.StatusCode)
	}
	t.logger.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

// ConsultationRequest is a submitted contact/consultation form.
type ConsultationRequest struct {
	Name           string
	Email          string
	Phone          string
	Training       string
	PreferredDates []string
	Message        string
	Language       string
}

// NotificationService formats and dispatches the transactional emails for a
// consultation request: one internal notification and one confirmation to
// the submitter. A failed send is surfaced once; there are no retries.
type NotificationService interface {
	DispatchConsultation(ctx context.Context, req ConsultationRequest) (string, error)
}

type notificationService struct {
	transport  MailTransport
	recipients []string
	logger     zerolog.Logger
}

// NewNotificationService creates a NotificationService delivering internal
// notifications to the given comma-separated recipient list.
func NewNotificationService(transport MailTransport, cfg *config.Config, logger zerolog.Logger) NotificationService {
	var recipients []string
	for _, r := range strings.Split(cfg.NotifyRecipients, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	return &notificationService{
		transport:  transport,
		recipients: recipients,
		logger:     logger.With().Str("service", "notification").Logger(),
	}
}

func (s *notificationService) DispatchConsultation(ctx context.Context, req ConsultationRequest) (string, error) {
	ref := uuid.NewString()
	isNL := req.Language == "nl"

	notifySubject := fmt.Sprintf("New Consultation Request: %s", req.Training)
	if isNL {
		notifySubject = fmt.Sprintf("Nieuw consultatieverzoek: %s", req.Training)
	}
	if err := s.transport.Send(ctx, MailMessage{
		Subject:  notifySubject,
		HTMLBody: notificationBody(req, ref, isNL),
		To:       s.recipients,
		ReplyTo:  req.Email,
	}); err != nil {
		return "", err
	}

	confirmSubject := "We received your training request - Cloud Evolvers"
	if isNL {
		confirmSubject = "We hebben je trainingsaanvraag ontvangen - Cloud Evolvers"
	}
	if err := s.transport.Send(ctx, MailMessage{
		Subject:  confirmSubject,
		HTMLBody: confirmationBody(req, ref, isNL),
		To:       []string{req.Email},
	}); err != nil {
		return "", err
	}

	s.logger.Info().Str("reference", ref).Str("training", req.Training).Msg("Consultation request dispatched")
	return ref, nil
}

func formatDates(dates []string, isNL bool) string {
	var kept []string
	for _, d := range dates {
		if d != "" {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		if isNL {
			return "Geen specifieke data opgegeven"
		}
		return "No specific dates provided"
	}
	return strings.Join(kept, ", ")
}

func notificationBody(req ConsultationRequest, ref string, isNL bool) string {
	heading := "New Consultation Request"
	if isNL {
		heading = "Nieuw Consultatieverzoek"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #1e40af;">&#9729;&#65039; Cloud Evolvers — %s</h1>
    <p><strong>Reference:</strong> %s</p>
    <table cellpadding="6">
      <tr><td><strong>Name</strong></td><td>%s</td></tr>
      <tr><td><strong>Email</strong></td><td>%s</td></tr>
      <tr><td><strong>Phone</strong></td><td>%s</td></tr>
      <tr><td><strong>Training</strong></td><td>%s</td></tr>
      <tr><td><strong>Preferred dates</strong></td><td>%s</td></tr>
    </table>
    <p>%s</p>
  </div>
</body>
</html>`,
		htmlEscape(heading), ref,
		htmlEscape(req.Name), htmlEscape(req.Email), htmlEscape(req.Phone),
		htmlEscape(req.Training), htmlEscape(formatDates(req.PreferredDates, isNL)),
		htmlEscape(req.Message))
}

func confirmationBody(req ConsultationRequest, ref string, isNL bool) string {
	if isNL {
		return fmt.Sprintf(`<!DOCTYPE html>
<html lang="nl">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #1e40af;">Bedankt, %s!</h1>
    <p>We hebben je aanvraag voor <strong>%s</strong> ontvangen en nemen binnen
    &eacute;&eacute;n werkdag contact met je op.</p>
    <p>Referentie: %s</p>
    <p>— Het Cloud Evolvers team</p>
  </div>
</body>
</html>`, htmlEscape(req.Name), htmlEscape(req.Training), ref)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #1e40af;">Thank you, %s!</h1>
    <p>We received your request for <strong>%s</strong> and will get back to
    you within one business day.</p>
    <p>Reference: %s</p>
    <p>— The Cloud Evolvers team</p>
  </div>
</body>
</html>`, htmlEscape(req.Name), htmlEscape(req.Training), ref)
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
