package contact

// Request is a contact-form submission. Format validation (email
// syntax, minimum message length) happens at the binding layer, before
// the service runs.
type Request struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10"`
}
