package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/wellbeing-site/internal/config"
	"github.com/aanand-mishra/wellbeing-site/internal/http/middleware"
	"github.com/aanand-mishra/wellbeing-site/internal/testutil"
)

func newTestRouter(t *testing.T) (http.Handler, *testutil.Store) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Admin.User = "admin"
	cfg.Admin.Pass = "s3cret"

	store := testutil.NewStore()
	return New(cfg, store, nil), store
}

func TestRouter_AdminRequiresAuth(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, path := range []string{"/admin", "/metrics"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, path, nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		if w.Header().Get("WWW-Authenticate") == "" {
			t.Errorf("%s: expected WWW-Authenticate challenge", path)
		}

		req := testutil.MakeRequest(http.MethodGet, path, nil)
		req.SetBasicAuth("admin", "wrong")
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)

		req = testutil.MakeRequest(http.MethodGet, path, nil)
		req.SetBasicAuth("admin", "s3cret")
		w = httptest.NewRecorder()
		h.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}
}

func TestRouter_FormRoundTrip(t *testing.T) {
	h, store := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, testutil.MakeRequest(http.MethodPost, "/api/contact", map[string]string{
		"name": "Ravi", "email": "ravi@example.com", "message": "I would like to talk",
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
	if len(store.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(store.Contacts))
	}

	req := testutil.MakeRequest(http.MethodGet, "/admin", nil)
	req.SetBasicAuth("admin", "s3cret")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "I would like to talk") {
		t.Error("expected the contact message on the admin page")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, testutil.MakeRequest(http.MethodPut, "/api/register", nil))
	testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
}

func TestRouter_StaticSite(t *testing.T) {
	h, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "<html") {
		t.Error("expected the index page")
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, testutil.MakeRequest(http.MethodGet, "/health", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}
