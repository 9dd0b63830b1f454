// Package mail holds the outbound email contracts shared by the
// subscription and contact domains. Implementations live in infra/.
package mail

import (
	"context"

	"portfolio-api/internal/i18n"
)

// Message is a fully built email ready for delivery.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Headers map[string]string
}

// Sender delivers a message through the email provider and returns the
// provider's message ID.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// Kind identifies an email template family.
type Kind string

const (
	KindContactRequest     Kind = "contact_request"
	KindSubscribeConfirmed Kind = "subscription_confirmed"
	KindSubscribeCancelled Kind = "subscription_cancelled"
)

// Renderer produces a subject line, HTML body, and plain-text body for
// the given email kind in the given language.
type Renderer interface {
	Render(kind Kind, lang i18n.Language, data map[string]any) (subject, html, text string, err error)
}

// RecipientRateLimiter caps how often mail may be triggered for a single
// recipient address.
type RecipientRateLimiter interface {
	// Allow reports whether another email may be sent to the recipient.
	Allow(ctx context.Context, recipient string) (bool, error)
}
