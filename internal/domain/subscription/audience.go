package subscription

import "context"

// Contact is a subscriber entry in the external audience, referenced by
// normalized email address.
type Contact struct {
	Email        string
	Unsubscribed bool
}

// Audience is the external contact-list service. Errors carry the
// provider's human-readable message; the service classifies benign
// conditions ("already exists", "not found") by that text.
// The implementation lives in infra/email.
type Audience interface {
	// CreateContact adds a contact to the audience.
	CreateContact(ctx context.Context, audienceID, email string) error

	// GetContact fetches a contact by email.
	GetContact(ctx context.Context, audienceID, email string) (*Contact, error)

	// UpdateContact sets the contact's unsubscribed flag.
	UpdateContact(ctx context.Context, audienceID, email string, unsubscribed bool) error

	// RemoveContact deletes the contact. Used only as a compensating
	// rollback when a freshly created contact's welcome email fails.
	RemoveContact(ctx context.Context, audienceID, email string) error
}
