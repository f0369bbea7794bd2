package models

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard JSON body for operations whose only
// meaningful result is a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}
