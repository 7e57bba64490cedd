package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/security"
	"github.com/prompttoproduct-dev/concertcalendar/internal/webhook"
)

const testTMSecret = "tm-webhook-secret-0123456789"

type nopStore struct{ upserts int }

func (s *nopStore) Upsert(_ context.Context, _ providers.ExternalConcert) error {
	s.upserts++
	return nil
}

func (s *nopStore) DeleteByExternal(_ context.Context, _ string, _ domain.Source) error { return nil }

type nopLimiter struct{}

func (nopLimiter) IsLimited(string) bool { return false }
func (nopLimiter) Remaining(string) int  { return 100 }
func (nopLimiter) Cleanup()              {}

func newTestRouter(t *testing.T, store *nopStore) http.Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	secrets := security.NewSecretStore(map[string]string{
		"TICKETMASTER_WEBHOOK_SECRET": testTMSecret,
		"EVENTBRITE_WEBHOOK_SECRET":   "eb-webhook-secret-0123456789",
	})
	proc := webhook.NewProcessor(nopLimiter{}, security.NewAuditLogger(logger, nil), secrets, store, nil)
	return NewRouter(Deps{Webhooks: NewWebhookHandler(proc)})
}

func signTM(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testTMSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookEndpoint_Accepted(t *testing.T) {
	store := &nopStore{}
	r := newTestRouter(t, store)

	body := []byte(`{
		"event_type": "event.created",
		"data": {"id": "tm1", "name": "Show", "dates": {"start": {"localDate": "2025-09-10"}}}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ticketmaster", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ticketmaster-Signature", signTM(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["message"] != "Webhook processed successfully" {
		t.Errorf("message = %q", resp["message"])
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want 1", store.upserts)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
}

func TestWebhookEndpoint_BadSignature(t *testing.T) {
	r := newTestRouter(t, &nopStore{})

	body := []byte(`{
		"event_type": "event.created",
		"data": {"id": "tm1", "name": "Show", "dates": {"start": {"localDate": "2025-09-10"}}}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/ticketmaster", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ticketmaster-Signature", "deadbeef")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["message"] != "Invalid webhook signature" {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestWebhookEndpoint_MethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, &nopStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhooks/ticketmaster", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &nopStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestBoroughs(t *testing.T) {
	r := NewRouter(Deps{
		Webhooks: NewWebhookHandler(nil),
		Catalog:  NewCatalogHandler(nil, nil, nil),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/boroughs", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Boroughs []string `json:"boroughs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Boroughs) != 5 {
		t.Errorf("boroughs = %v, want all five", resp.Boroughs)
	}
}
