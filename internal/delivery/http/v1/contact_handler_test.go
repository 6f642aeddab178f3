package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go-agency-backend/config"
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/domain"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/ratelimit"
	"go-agency-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// stubDispatcher records calls and returns a fixed outcome.
type stubDispatcher struct {
	mu      sync.Mutex
	outcome domain.DispatchOutcome
	calls   int
	last    domain.ContactRequest
}

func (s *stubDispatcher) SendNotification(ctx context.Context, req *domain.ContactRequest) domain.DispatchOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = *req
	return s.outcome
}

func newTestRouter(dispatcher domain.ContactDispatcher, contactLimit int, dispatchTimeout time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)

	validate := validator.New()
	validation.RegisterValidators(validate)

	cfg := &config.Config{Environment: "test", FrontendURL: "http://localhost:3000"}
	limiter := ratelimit.NewMemory(contactLimit, time.Minute)

	return v1.NewRouter(v1.RouterDeps{
		ContactUC: usecase.NewContactUsecase(dispatcher, limiter, validate, dispatchTimeout),
		HealthUC:  usecase.NewHealthUsecase(cfg),
		Config:    cfg,
	})
}

func postContact(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSubmitContactSuccess(t *testing.T) {
	dispatcher := &stubDispatcher{outcome: domain.OutcomeSent}
	router := newTestRouter(dispatcher, 5, time.Second)

	rec := postContact(router, `{"name":"Test User","email":"test@example.com","projectDetails":"Hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Message sent successfully!", body["message"])

	assert.Equal(t, 1, dispatcher.calls)
	assert.Equal(t, "Test User", dispatcher.last.Name)
	assert.Equal(t, "test@example.com", dispatcher.last.Email)
	assert.Equal(t, "Hello", dispatcher.last.ProjectDetails)
	assert.Equal(t, "", dispatcher.last.Phone)
}

func TestSubmitContactMalformedJSON(t *testing.T) {
	dispatcher := &stubDispatcher{outcome: domain.OutcomeSent}
	router := newTestRouter(dispatcher, 5, time.Second)

	rec := postContact(router, `{"name": "Test", `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, 0, dispatcher.calls)
}

func TestSubmitContactValidationErrors(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		errContains string
	}{
		{"missing name", `{"email":"a@b.com"}`, "Name"},
		{"missing email", `{"name":"Test"}`, "Email"},
		{"invalid email", `{"name":"Test","email":"invalid"}`, "valid email"},
		{"short phone", `{"name":"Test","email":"a@b.com","phone":"12345"}`, "valid phone"},
		{"long details", `{"name":"Test","email":"a@b.com","projectDetails":"` + strings.Repeat("x", 1001) + `"}`, "1000 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &stubDispatcher{outcome: domain.OutcomeSent}
			router := newTestRouter(dispatcher, 5, time.Second)

			rec := postContact(router, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			errMsg, _ := body["error"].(string)
			assert.Contains(t, errMsg, tc.errContains)
			assert.Equal(t, 0, dispatcher.calls, "dispatcher must never see invalid input")
		})
	}
}

func TestSubmitContactRateLimited(t *testing.T) {
	dispatcher := &stubDispatcher{outcome: domain.OutcomeSent}
	router := newTestRouter(dispatcher, 1, time.Second)

	valid := `{"name":"Test","email":"a@b.com"}`

	rec := postContact(router, valid)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postContact(router, valid)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["error"])
	retryAfter, ok := body["retryAfter"].(float64)
	assert.True(t, ok, "retryAfter must be present: %v", body)
	assert.GreaterOrEqual(t, retryAfter, float64(1))

	assert.Equal(t, 1, dispatcher.calls, "rejected request must not dispatch")
}

func TestSubmitContactDispatchFailures(t *testing.T) {
	cases := []struct {
		name     string
		outcome  domain.DispatchOutcome
		wantCode int
		wantMsg  string
	}{
		{"transport failure", domain.OutcomeTransportFailure, http.StatusInternalServerError, "Failed to send email. Please try again."},
		{"config missing", domain.OutcomeConfigMissing, http.StatusInternalServerError, "Email service configuration error. Please contact support."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &stubDispatcher{outcome: tc.outcome}
			router := newTestRouter(dispatcher, 5, time.Second)

			rec := postContact(router, `{"name":"Test","email":"a@b.com"}`)

			assert.Equal(t, tc.wantCode, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

// blockedDispatcher never returns until released.
type blockedDispatcher struct {
	release chan struct{}
}

func (d *blockedDispatcher) SendNotification(ctx context.Context, req *domain.ContactRequest) domain.DispatchOutcome {
	<-d.release
	return domain.OutcomeSent
}

func TestSubmitContactTimeout(t *testing.T) {
	dispatcher := &blockedDispatcher{release: make(chan struct{})}
	defer close(dispatcher.release)
	router := newTestRouter(dispatcher, 5, 50*time.Millisecond)

	rec := postContact(router, `{"name":"Test","email":"a@b.com"}`)

	assert.Equal(t, http.StatusRequestTimeout, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Request timeout. Please try again.", body["error"])
}

func TestHealthEndpoint(t *testing.T) {
	t.Setenv("SMTP_USERNAME", "relay-user")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("CONTACT_EMAIL_TO", "hello@agency.example")

	router := newTestRouter(&stubDispatcher{}, 5, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])

	mailReport, ok := body["mail"].(map[string]interface{})
	if assert.True(t, ok, "mail section missing: %v", body) {
		assert.Equal(t, true, mailReport["smtpUsernameSet"])
		assert.Equal(t, false, mailReport["smtpPasswordSet"])
		assert.Equal(t, true, mailReport["contactToSet"])
	}
	// Non-production environments also expose the non-secret values.
	assert.Contains(t, body, "mailDetail")
}

func TestRequestIDHeaderSet(t *testing.T) {
	router := newTestRouter(&stubDispatcher{outcome: domain.OutcomeSent}, 5, time.Second)

	rec := postContact(router, `{"name":"Test","email":"a@b.com"}`)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
