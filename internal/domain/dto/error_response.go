package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response except the quota note.
//
// Fields carries field-level validation messages (field name → messages); it is
// omitted for errors that are not tied to input fields.
type ErrorResponse struct {
	Message      string              `json:"message" example:"invalid request"`
	ErrorDetails string              `json:"error,omitempty" example:"symbols is required"`
	Fields       map[string][]string `json:"fields,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Error makes ErrorResponse usable as an error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// NewValidationErrorResponse builds a 400 body carrying field-level messages.
func NewValidationErrorResponse(fields map[string][]string) ErrorResponse {
	resp := NewErrorResponse("invalid request", nil)
	resp.Fields = fields
	return resp
}
