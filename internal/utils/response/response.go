// Package response writes the JSON envelope every form endpoint returns:
//
//	{ "success": true,  "id": 7, "message": "Registration received" }
//	{ "success": false, "errors": ["Name is required..."], "message": "Validation failed" }
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/wellbeing-site/internal/types"
)

type Response struct {
	Success bool     `json:"success"`
	ID      int64    `json:"id,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message"`

	// Score endpoint.
	Category string `json:"category,omitempty"`

	// Mail endpoint. Sent is a pointer so that false is still written.
	Sent   *bool            `json:"sent,omitempty"`
	Status types.MailStatus `json:"status,omitempty"`
}

const (
	MsgValidationFailed = "Validation failed"
	MsgInternal         = "Something went wrong. Please try again later."
)

// WriteJSON sets the content type and status, then encodes data.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
	return err
}

func Created(id int64, message string) Response {
	return Response{Success: true, ID: id, Message: message}
}

// ValidationError wraps validation messages for a 400.
func ValidationError(errs []string) Response {
	return Response{Success: false, Errors: errs, Message: MsgValidationFailed}
}

// InternalError is the only thing a client learns about a server-side
// failure. The cause is logged by the caller.
func InternalError() Response {
	return Response{Success: false, Message: MsgInternal}
}

func Bool(b bool) *bool {
	return &b
}
