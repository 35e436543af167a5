// Package validation checks form payloads and turns failures into
// sentences a visitor can act on.
//
// Every check is a pure function: it trims the payload, runs the
// validate:"..." tags declared in package types, and returns either the
// normalized record or a list of error messages. Sanitization and
// persistence happen later, in the handlers.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/aanand-mishra/wellbeing-site/internal/types"
	"github.com/go-playground/validator/v10"
)

const maxDetailsLength = 5000

// validate caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages holds one message per field. A field reports the same
// sentence whichever of its rules failed, so the visitor sees the full
// constraint at once.
var fieldMessages = map[string]string{
	"Name":    "Name is required and must be between 2 and 100 characters",
	"Email":   "A valid email address is required",
	"Address": "Address must be at most 200 characters",
	"Contact": "Contact number is required and must be at most 20 characters",
	"Message": "Message is required and must be between 10 and 5000 characters",
	"Score":   "Score is required and must be a number between 0 and 4",
	"To":      "At least one valid recipient email address is required (maximum 10)",
	"Subject": "Subject is required and must be at most 200 characters",
	"Body":    "Body is required and must be at most 10000 characters",
}

// Registration validates an event sign-up.
func Registration(req types.RegistrationRequest) (types.Registration, []string) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Address = strings.TrimSpace(req.Address)
	req.Contact = strings.TrimSpace(req.Contact)

	if errs := check(req); len(errs) > 0 {
		return types.Registration{}, errs
	}

	return types.Registration{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		Contact: req.Contact,
	}, nil
}

// Contact validates a contact-form message. Lengths are counted in
// characters, not bytes.
func Contact(req types.ContactRequest) (types.ContactMessage, []string) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if errs := check(req); len(errs) > 0 {
		return types.ContactMessage{}, errs
	}

	return types.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}, nil
}

// Score validates a self-assessment result.
func Score(req types.ScoreRequest) (types.Score, []string) {
	errs := check(req)

	details, err := normalizeDetails(req.Details)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return types.Score{}, errs
	}

	return types.Score{Score: *req.Score, Details: details}, nil
}

// Mail validates a relay request. Text is used when Body is empty.
func Mail(req types.MailRequest) (types.MailRecord, []string) {
	req.Subject = strings.TrimSpace(req.Subject)
	if strings.TrimSpace(req.Body) == "" {
		req.Body = req.Text
	}
	req.Body = strings.TrimSpace(req.Body)

	if errs := check(req); len(errs) > 0 {
		return types.MailRecord{}, errs
	}

	return types.MailRecord{
		Recipients: req.To.String(),
		Subject:    req.Subject,
		Body:       req.Body,
		Status:     types.MailPending,
	}, nil
}

func check(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	var messages []string
	seen := make(map[string]bool)
	for _, e := range verrs {
		// Element errors from "dive" come back as To[0], To[1]...
		field := e.StructField()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if seen[field] {
			continue
		}
		seen[field] = true

		msg, ok := fieldMessages[field]
		if !ok {
			msg = fmt.Sprintf("Field %s is invalid", strings.ToLower(field))
		}
		messages = append(messages, msg)
	}
	return messages
}

// normalizeDetails keeps a JSON string as plain text and any other value
// as compact JSON.
func normalizeDetails(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}

	var details string
	if err := json.Unmarshal(raw, &details); err != nil {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", errors.New("Details must be valid JSON")
		}
		details = buf.String()
	}
	details = strings.TrimSpace(details)

	if utf8.RuneCountInString(details) > maxDetailsLength {
		return "", fmt.Errorf("Details must be at most %d characters", maxDetailsLength)
	}
	return details, nil
}

// Decode reads a JSON body into dst. A non-nil result is the list of
// messages to send back with a 400.
func Decode(body io.Reader, dst any) []string {
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return []string{"Request body is empty"}
	case errors.As(err, &maxErr):
		return []string{"Request body is too large"}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []string{"Request body must be valid JSON"}
	case errors.As(err, &typeErr):
		return []string{fmt.Sprintf("Field %s must be %s", typeErr.Field, kindName(typeErr.Type))}
	case errors.Is(err, types.ErrRecipientsType):
		return []string{"Field to must be an email address or a list of email addresses"}
	default:
		return []string{"Request body could not be read"}
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}
