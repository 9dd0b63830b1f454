package subscription

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"portfolio-api/internal/common"
	"portfolio-api/internal/domain/mail"
	"portfolio-api/internal/i18n"
)

// Config holds the resolved external-service identifiers the coordinator
// needs. It is populated from configuration at startup; the service never
// reads ambient state.
type Config struct {
	// AudienceID names the contact list at the email provider.
	AudienceID string

	// UpdatesFrom is the sender address for subscription emails.
	UpdatesFrom string

	// ReplyTo is the site owner's contact address, set as reply-to on
	// subscription emails. Optional.
	ReplyTo string

	// SiteBaseURL is the canonical site origin used to build
	// unsubscribe links.
	SiteBaseURL string
}

// Service coordinates the audience service and the email sender to
// implement subscribe / resubscribe / unsubscribe.
//
// Each flow is a sequential chain of external calls with no retries.
// When a state change has been committed and a dependent send fails, the
// service performs exactly one compensating call to restore the previous
// state, then surfaces the send failure. A failing compensating call is
// logged, not escalated.
type Service struct {
	audience Audience
	sender   mail.Sender
	renderer mail.Renderer
	limiter  mail.RecipientRateLimiter
	cfg      Config
}

// NewService creates a new subscription service. limiter may be nil to
// disable per-recipient rate limiting.
func NewService(audience Audience, sender mail.Sender, renderer mail.Renderer, limiter mail.RecipientRateLimiter, cfg Config) *Service {
	return &Service{
		audience: audience,
		sender:   sender,
		renderer: renderer,
		limiter:  limiter,
		cfg:      cfg,
	}
}

// normalizeEmail is the canonical form used for all audience operations
// and unsubscribe links.
func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// isConflict classifies a provider error as "contact already exists".
// The provider exposes no structured error code, so this matches the
// message text the way the site always has.
func isConflict(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already")
}

// isNotFound classifies a provider error as "contact not found".
func isNotFound(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// Subscribe adds the address to the audience and sends a welcome email
// carrying the unsubscribe link.
//
// Outcomes: OutcomeSubscribed for a new contact, OutcomeResubscribed for
// a previously unsubscribed one, OutcomeAlready for an active subscriber
// (no email is sent in that case).
func (s *Service) Subscribe(ctx context.Context, email string, lang i18n.Language) (Outcome, error) {
	if s.cfg.AudienceID == "" {
		return "", common.NewConfigError("audience id is not configured")
	}
	if s.cfg.SiteBaseURL == "" {
		return "", common.NewConfigError("site base url is not configured")
	}

	addr := normalizeEmail(email)

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, addr)
		if err != nil {
			// Fail open: a limiter outage must not block subscriptions.
			slog.Error("subscription rate limit check failed", "email", addr, "error", err)
		} else if !allowed {
			return "", common.NewValidationError("too many subscription attempts for this address")
		}
	}

	unsubscribeURL := strings.TrimRight(s.cfg.SiteBaseURL, "/") + "/unsubscribe?email=" + url.QueryEscape(addr)

	createErr := s.audience.CreateContact(ctx, s.cfg.AudienceID, addr)
	if createErr == nil {
		if err := s.sendWelcome(ctx, addr, lang, unsubscribeURL); err != nil {
			// The contact exists but never received its unsubscribe
			// link; roll the creation back so the state stays visible.
			if rbErr := s.audience.RemoveContact(ctx, s.cfg.AudienceID, addr); rbErr != nil {
				slog.Error("subscribe rollback failed", "email", addr, "error", rbErr)
			}
			return "", err
		}
		slog.Info("subscriber added", "email", addr, "lang", lang)
		return OutcomeSubscribed, nil
	}

	if !isConflict(createErr) {
		return "", createErr
	}

	contact, err := s.audience.GetContact(ctx, s.cfg.AudienceID, addr)
	if err != nil {
		return "", err
	}

	if !contact.Unsubscribed {
		// Active subscriber: do not send another welcome email.
		return OutcomeAlready, nil
	}

	if err := s.audience.UpdateContact(ctx, s.cfg.AudienceID, addr, false); err != nil {
		return "", err
	}
	if err := s.sendWelcome(ctx, addr, lang, unsubscribeURL); err != nil {
		if rbErr := s.audience.UpdateContact(ctx, s.cfg.AudienceID, addr, true); rbErr != nil {
			slog.Error("resubscribe rollback failed", "email", addr, "error", rbErr)
		}
		return "", err
	}

	slog.Info("subscriber restored", "email", addr, "lang", lang)
	return OutcomeResubscribed, nil
}

// Unsubscribe flags the contact as unsubscribed and sends an advisory
// confirmation email. Unsubscribing an unknown address is a no-op
// success (OutcomeNotFound); a failing confirmation email never fails or
// rolls back the unsubscribe itself.
func (s *Service) Unsubscribe(ctx context.Context, email string, lang i18n.Language) (Outcome, error) {
	if s.cfg.AudienceID == "" {
		return "", common.NewConfigError("audience id is not configured")
	}

	addr := normalizeEmail(email)

	contact, err := s.audience.GetContact(ctx, s.cfg.AudienceID, addr)
	if err != nil {
		if isNotFound(err) {
			return OutcomeNotFound, nil
		}
		return "", err
	}

	if contact.Unsubscribed {
		return OutcomeAlready, nil
	}

	if err := s.audience.UpdateContact(ctx, s.cfg.AudienceID, addr, true); err != nil {
		return "", err
	}

	if err := s.sendCancellation(ctx, addr, lang); err != nil {
		slog.Warn("unsubscribe confirmation email failed", "email", addr, "error", err)
	}

	slog.Info("subscriber removed", "email", addr, "lang", lang)
	return OutcomeUnsubscribed, nil
}

func (s *Service) sendWelcome(ctx context.Context, addr string, lang i18n.Language, unsubscribeURL string) error {
	subject, html, text, err := s.renderer.Render(mail.KindSubscribeConfirmed, lang, map[string]any{
		"UnsubscribeURL": unsubscribeURL,
	})
	if err != nil {
		return err
	}

	_, err = s.sender.Send(ctx, &mail.Message{
		From:    s.cfg.UpdatesFrom,
		To:      addr,
		ReplyTo: s.cfg.ReplyTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
		Headers: map[string]string{
			"List-Unsubscribe": "<" + unsubscribeURL + ">",
		},
	})
	return err
}

func (s *Service) sendCancellation(ctx context.Context, addr string, lang i18n.Language) error {
	subject, html, text, err := s.renderer.Render(mail.KindSubscribeCancelled, lang, map[string]any{})
	if err != nil {
		return err
	}

	_, err = s.sender.Send(ctx, &mail.Message{
		From:    s.cfg.UpdatesFrom,
		To:      addr,
		ReplyTo: s.cfg.ReplyTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	return err
}
