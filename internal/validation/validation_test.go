package validation

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/wellbeing-site/internal/types"
)

func ptr(f float64) *float64 { return &f }

func containsPrefix(errs []string, prefix string) bool {
	for _, e := range errs {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}

func TestRegistration(t *testing.T) {
	valid := types.RegistrationRequest{
		Name:    "  Asha Rao ",
		Email:   "asha@example.com",
		Contact: "+91 98765 43210",
	}

	reg, errs := Registration(valid)
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if reg.Name != "Asha Rao" {
		t.Errorf("expected trimmed name, got %q", reg.Name)
	}

	tests := []struct {
		name   string
		mutate func(*types.RegistrationRequest)
		prefix string
	}{
		{"empty name", func(r *types.RegistrationRequest) { r.Name = "" }, "Name is required"},
		{"whitespace name", func(r *types.RegistrationRequest) { r.Name = "   " }, "Name is required"},
		{"bad email", func(r *types.RegistrationRequest) { r.Email = "not-an-email" }, "A valid email"},
		{"missing contact", func(r *types.RegistrationRequest) { r.Contact = "" }, "Contact number"},
		{"contact too long", func(r *types.RegistrationRequest) { r.Contact = strings.Repeat("9", 21) }, "Contact number"},
		{"address too long", func(r *types.RegistrationRequest) { r.Address = strings.Repeat("a", 201) }, "Address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, errs := Registration(req)
			if !containsPrefix(errs, tt.prefix) {
				t.Errorf("expected error starting with %q, got %v", tt.prefix, errs)
			}
		})
	}
}

func TestRegistration_ContactAtLimit(t *testing.T) {
	req := types.RegistrationRequest{Name: "Bo", Email: "bo@example.com", Contact: strings.Repeat("1", 20)}
	if _, errs := Registration(req); errs != nil {
		t.Errorf("20-character contact should pass, got %v", errs)
	}
}

func TestRegistration_ReportsEveryField(t *testing.T) {
	_, errs := Registration(types.RegistrationRequest{})
	if len(errs) != 3 {
		t.Errorf("expected 3 errors (name, email, contact), got %d: %v", len(errs), errs)
	}
}

func TestContact_MessageLength(t *testing.T) {
	base := types.ContactRequest{Name: "Ravi", Email: "ravi@example.com"}

	base.Message = "123456789"
	if _, errs := Contact(base); !containsPrefix(errs, "Message") {
		t.Errorf("9-character message should be rejected, got %v", errs)
	}

	base.Message = "1234567890"
	msg, errs := Contact(base)
	if errs != nil {
		t.Errorf("10-character message should pass, got %v", errs)
	}
	if msg.Message != "1234567890" {
		t.Errorf("unexpected message %q", msg.Message)
	}

	// Counted in characters: ten multibyte runes are enough.
	base.Message = strings.Repeat("é", 10)
	if _, errs := Contact(base); errs != nil {
		t.Errorf("10 multibyte characters should pass, got %v", errs)
	}

	base.Message = strings.Repeat("x", 5001)
	if _, errs := Contact(base); !containsPrefix(errs, "Message") {
		t.Errorf("5001-character message should be rejected, got %v", errs)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		req     types.ScoreRequest
		wantErr bool
		details string
	}{
		{"valid", types.ScoreRequest{Score: ptr(3.25)}, false, ""},
		{"zero", types.ScoreRequest{Score: ptr(0)}, false, ""},
		{"four", types.ScoreRequest{Score: ptr(4)}, false, ""},
		{"missing", types.ScoreRequest{}, true, ""},
		{"negative", types.ScoreRequest{Score: ptr(-0.1)}, true, ""},
		{"above four", types.ScoreRequest{Score: ptr(4.01)}, true, ""},
		{"string details", types.ScoreRequest{Score: ptr(2), Details: json.RawMessage(`"felt tired"`)}, false, "felt tired"},
		{"object details", types.ScoreRequest{Score: ptr(2), Details: json.RawMessage(`{ "q1": 3 }`)}, false, `{"q1":3}`},
		{"null details", types.ScoreRequest{Score: ptr(2), Details: json.RawMessage(`null`)}, false, ""},
		{"huge details", types.ScoreRequest{Score: ptr(2), Details: json.RawMessage(`"` + strings.Repeat("a", 5001) + `"`)}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, errs := Score(tt.req)
			if tt.wantErr {
				if errs == nil {
					t.Fatal("expected errors")
				}
				return
			}
			if errs != nil {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if score.Details != tt.details {
				t.Errorf("details = %q, want %q", score.Details, tt.details)
			}
		})
	}
}

func TestMail(t *testing.T) {
	req := types.MailRequest{
		To:      types.Recipients{"a@example.com", "b@example.com"},
		Subject: " Hello ",
		Text:    "Body via text alias",
	}

	rec, errs := Mail(req)
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if rec.Recipients != "a@example.com, b@example.com" {
		t.Errorf("recipients = %q", rec.Recipients)
	}
	if rec.Body != "Body via text alias" {
		t.Errorf("body = %q", rec.Body)
	}
	if rec.Status != types.MailPending {
		t.Errorf("status = %q, want pending", rec.Status)
	}

	req.To = types.Recipients{"a@example.com", "nope"}
	if _, errs := Mail(req); len(errs) != 1 || !containsPrefix(errs, "At least one valid recipient") {
		t.Errorf("expected a single recipient error, got %v", errs)
	}

	req.To = types.Recipients{}
	if _, errs := Mail(req); !containsPrefix(errs, "At least one valid recipient") {
		t.Errorf("expected recipient error for empty list, got %v", errs)
	}

	req.To = types.Recipients{"a@example.com"}
	req.Text = ""
	if _, errs := Mail(req); !containsPrefix(errs, "Body is required") {
		t.Errorf("expected body error, got %v", errs)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "Request body is empty"},
		{"malformed", `{"name":`, "Request body must be valid JSON"},
		{"syntax", `{name}`, "Request body must be valid JSON"},
		{"wrong type", `{"score":"high"}`, "Field score must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req types.ScoreRequest
			errs := Decode(strings.NewReader(tt.body), &req)
			if len(errs) != 1 || errs[0] != tt.want {
				t.Errorf("Decode(%q) = %v, want [%q]", tt.body, errs, tt.want)
			}
		})
	}
}

func TestDecode_Recipients(t *testing.T) {
	var req types.MailRequest
	if errs := Decode(strings.NewReader(`{"to":"a@x.com, b@y.com"}`), &req); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(req.To) != 2 || req.To[1] != "b@y.com" {
		t.Errorf("unexpected recipients %v", req.To)
	}

	req = types.MailRequest{}
	if errs := Decode(strings.NewReader(`{"to":["a@x.com","b@y.com,c@z.com"]}`), &req); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(req.To) != 3 {
		t.Errorf("expected 3 recipients, got %v", req.To)
	}

	req = types.MailRequest{}
	errs := Decode(strings.NewReader(`{"to":42}`), &req)
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "Field to must be") {
		t.Errorf("expected recipients type error, got %v", errs)
	}
}

func TestDecode_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(`{"message":"`+strings.Repeat("x", 64)+`"}`)), 16)

	var req types.ContactRequest
	errs := Decode(body, &req)
	if len(errs) != 1 || errs[0] != "Request body is too large" {
		t.Errorf("expected too-large error, got %v", errs)
	}
}
