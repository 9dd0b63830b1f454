// Package contact forwards contact-form submissions to the site owner
// as a single transactional email. One external call, no retries, no
// rollback; provider errors surface verbatim.
package contact

import (
	"context"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"portfolio-api/internal/common"
	"portfolio-api/internal/domain/mail"
	"portfolio-api/internal/i18n"
)

// Config holds the resolved addresses for contact notifications.
type Config struct {
	// From is the sender address for contact notifications.
	From string

	// Recipient is the site owner's inbox.
	Recipient string
}

// Service builds and sends the contact notification email.
type Service struct {
	sender   mail.Sender
	renderer mail.Renderer
	limiter  mail.RecipientRateLimiter
	cfg      Config
}

// NewService creates a new contact service. limiter may be nil.
func NewService(sender mail.Sender, renderer mail.Renderer, limiter mail.RecipientRateLimiter, cfg Config) *Service {
	return &Service{sender: sender, renderer: renderer, limiter: limiter, cfg: cfg}
}

// sanitizeSubject keeps user-supplied text from smuggling extra headers
// into the subject line.
func sanitizeSubject(value string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(value, func(r rune) bool {
		return r == '\r' || r == '\n'
	}), " "))
}

// Send delivers the contact notification to the configured recipient,
// with the submitter's address as reply-to.
func (s *Service) Send(ctx context.Context, req *Request) error {
	if s.cfg.Recipient == "" {
		return common.NewConfigError("contact email is not configured")
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			slog.Error("contact rate limit check failed", "error", err)
		} else if !allowed {
			return common.NewValidationError("too many contact requests from this address")
		}
	}

	// The message body is user text: escape it, then turn newlines into
	// line breaks so the template can inject it as markup.
	safeMessage := strings.ReplaceAll(template.HTMLEscapeString(req.Message), "\n", "<br />")

	subject, html, text, err := s.renderer.Render(mail.KindContactRequest, i18n.Default, map[string]any{
		"Subject":    sanitizeSubject("New contact request from " + req.Name),
		"Name":       req.Name,
		"Email":      req.Email,
		"Message":    template.HTML(safeMessage),
		"ReceivedAt": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if _, err := s.sender.Send(ctx, &mail.Message{
		From:    s.cfg.From,
		To:      s.cfg.Recipient,
		ReplyTo: req.Email,
		Subject: subject,
		HTML:    html,
		Text:    text,
	}); err != nil {
		return err
	}

	slog.Info("contact request forwarded", "from", req.Email)
	return nil
}
