package subscription

// Outcome is the result of a subscribe or unsubscribe operation. It is
// returned to the caller and drives the user-facing message; it is never
// persisted (the audience service is the source of truth).
type Outcome string

const (
	OutcomeSubscribed   Outcome = "subscribed"
	OutcomeResubscribed Outcome = "resubscribed"
	OutcomeAlready      Outcome = "already"
	OutcomeUnsubscribed Outcome = "unsubscribed"
	OutcomeNotFound     Outcome = "not_found"
)

// Request is the payload for both subscribe and unsubscribe calls.
type Request struct {
	Email string `json:"email" binding:"required,email"`
}

// Response reports the outcome with a localized message for display.
type Response struct {
	Status  Outcome `json:"status"`
	Message string  `json:"message,omitempty"`
}
