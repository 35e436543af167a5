// Package form holds the handlers behind the site's three public forms.
//
// Each handler is a factory: it receives its dependencies once, when the
// route is registered, and returns the http.HandlerFunc that serves every
// request. Every request goes through the same steps:
//
//	decode JSON → validate → sanitize → persist → respond
//
// Validation failures answer 400 with the list of messages. Storage
// failures answer 500 with a generic message; the cause is only logged.
package form

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/wellbeing-site/internal/assessment"
	"github.com/aanand-mishra/wellbeing-site/internal/metrics"
	"github.com/aanand-mishra/wellbeing-site/internal/sanitize"
	"github.com/aanand-mishra/wellbeing-site/internal/storage"
	"github.com/aanand-mishra/wellbeing-site/internal/types"
	"github.com/aanand-mishra/wellbeing-site/internal/utils/response"
	"github.com/aanand-mishra/wellbeing-site/internal/validation"
)

// MaxBodyBytes caps every form body.
const MaxBodyBytes = 64 << 10

// Register handles POST /api/register.
//
//	{ "name": "Asha", "email": "asha@example.com", "address": "", "contact": "98765" }
func Register(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegistrationRequest
		if errs := validation.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), &req); errs != nil {
			Invalid(w, "register", errs)
			return
		}

		reg, errs := validation.Registration(req)
		if errs != nil {
			Invalid(w, "register", errs)
			return
		}

		reg.Name = sanitize.HTML(reg.Name)
		reg.Email = sanitize.HTML(reg.Email)
		reg.Address = sanitize.HTML(reg.Address)
		reg.Contact = sanitize.HTML(reg.Contact)

		id, err := storage.CreateRegistration(r.Context(), reg)
		if err != nil {
			Failed(w, r, "register", err)
			return
		}

		slog.Info("registration stored", slog.Int64("id", id))
		metrics.FormSubmissions.WithLabelValues("register", metrics.OutcomeAccepted).Inc()
		response.WriteJSON(w, http.StatusOK,
			response.Created(id, "Thank you for registering! We will be in touch soon."))
	}
}

// Contact handles POST /api/contact.
//
//	{ "name": "Ravi", "email": "ravi@example.com", "message": "At least ten characters" }
func Contact(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ContactRequest
		if errs := validation.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), &req); errs != nil {
			Invalid(w, "contact", errs)
			return
		}

		msg, errs := validation.Contact(req)
		if errs != nil {
			Invalid(w, "contact", errs)
			return
		}

		msg.Name = sanitize.HTML(msg.Name)
		msg.Email = sanitize.HTML(msg.Email)
		msg.Message = sanitize.HTML(msg.Message)

		id, err := storage.CreateContact(r.Context(), msg)
		if err != nil {
			Failed(w, r, "contact", err)
			return
		}

		slog.Info("contact message stored", slog.Int64("id", id))
		metrics.FormSubmissions.WithLabelValues("contact", metrics.OutcomeAccepted).Inc()
		response.WriteJSON(w, http.StatusOK,
			response.Created(id, "Thank you for your message! We will get back to you shortly."))
	}
}

// Score handles POST /api/score. The browser has already computed the
// score; it is logged here and its category is echoed back.
//
//	{ "score": 3.25, "details": { "answers": [4, 3, ...] } }
func Score(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ScoreRequest
		if errs := validation.Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), &req); errs != nil {
			Invalid(w, "score", errs)
			return
		}

		score, errs := validation.Score(req)
		if errs != nil {
			Invalid(w, "score", errs)
			return
		}

		score.Details = sanitize.HTML(score.Details)

		id, err := storage.CreateScore(r.Context(), score)
		if err != nil {
			Failed(w, r, "score", err)
			return
		}

		result := assessment.Categorize(score.Score)
		slog.Info("score stored",
			slog.Int64("id", id),
			slog.Float64("score", score.Score),
			slog.String("category", result.Category),
		)
		metrics.FormSubmissions.WithLabelValues("score", metrics.OutcomeAccepted).Inc()

		resp := response.Created(id, "Score recorded")
		resp.Category = result.Category
		response.WriteJSON(w, http.StatusOK, resp)
	}
}

// Invalid answers 400 with the validation messages.
func Invalid(w http.ResponseWriter, form string, errs []string) {
	metrics.FormSubmissions.WithLabelValues(form, metrics.OutcomeInvalid).Inc()
	response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
}

// Failed logs err and answers 500 without revealing it.
func Failed(w http.ResponseWriter, r *http.Request, form string, err error) {
	slog.Error("storage error",
		slog.String("form", form),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	metrics.FormSubmissions.WithLabelValues(form, metrics.OutcomeError).Inc()
	response.WriteJSON(w, http.StatusInternalServerError, response.InternalError())
}
