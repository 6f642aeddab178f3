// Package formclient is a programmatic counterpart of the website's contact
// form: it mirrors the server's validation rules for instant feedback, guards
// against double submission, and tracks the editing → submitting → submitted
// lifecycle the UI renders.
package formclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go-agency-backend/pkg/validation"
)

// Field names match the JSON keys of the contact endpoint.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldProjectDetails = "projectDetails"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission has not settled.
	ErrSubmissionInFlight = errors.New("formclient: submission already in flight")
	// ErrValidationFailed is returned when local validation fails; the
	// per-field messages are in State().Errors and no request was sent.
	ErrValidationFailed = errors.New("formclient: validation failed")
)

// Fields holds the current input values.
type Fields struct {
	Name           string
	Email          string
	Phone          string
	ProjectDetails string
}

// FormState is a snapshot of the controller. Exactly one of the boolean
// flags describes the phase: neither set = editing, IsSubmitting = request
// in flight, IsSubmitted = success confirmation showing.
type FormState struct {
	Fields       Fields
	Errors       map[string]string
	IsSubmitting bool
	IsSubmitted  bool
	SubmitError  string
}

type payload struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	ProjectDetails string `json:"projectDetails,omitempty"`
}

type apiResponse struct {
	Message    string `json:"message"`
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// Controller drives one contact form instance. Safe for concurrent use.
type Controller struct {
	endpoint string
	client   *http.Client

	mu    sync.Mutex
	state FormState
}

// New creates a controller posting to baseURL's contact endpoint. A nil
// httpClient gets a default with a timeout covering the server's 30s budget.
func New(baseURL string, httpClient *http.Client) *Controller {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 35 * time.Second}
	}
	return &Controller{
		endpoint: strings.TrimRight(baseURL, "/") + "/api/contact",
		client:   httpClient,
		state:    FormState{Errors: map[string]string{}},
	}
}

// Set updates one field and clears that field's error. Clearing is
// optimistic: the value is not re-validated until the next submit.
func (c *Controller) Set(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case FieldName:
		c.state.Fields.Name = value
	case FieldEmail:
		c.state.Fields.Email = value
	case FieldPhone:
		c.state.Fields.Phone = value
	case FieldProjectDetails:
		c.state.Fields.ProjectDetails = value
	default:
		return
	}
	delete(c.state.Errors, field)
}

// State returns a copy of the current form state.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() FormState {
	s := c.state
	s.Errors = make(map[string]string, len(c.state.Errors))
	for k, v := range c.state.Errors {
		s.Errors[k] = v
	}
	return s
}

// Dismiss acknowledges the success confirmation and returns the form to an
// empty editing state.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = FormState{Errors: map[string]string{}}
}

// Submit validates locally and, only if every rule passes, posts the
// submission. Client-invalid input never reaches the network, so obviously
// bad submissions don't burn rate-limit budget. On success the fields are
// cleared and IsSubmitted is set until Dismiss is called.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.IsSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	f := c.state.Fields
	errs := validation.FieldErrors(f.Name, f.Email, f.Phone, f.ProjectDetails)
	if len(errs) > 0 {
		c.state.Errors = errs
		c.mu.Unlock()
		return ErrValidationFailed
	}

	c.state.IsSubmitting = true
	c.state.SubmitError = ""
	body := payload{
		Name:           strings.TrimSpace(f.Name),
		Email:          strings.TrimSpace(f.Email),
		Phone:          strings.TrimSpace(f.Phone),
		ProjectDetails: strings.TrimSpace(f.ProjectDetails),
	}
	c.mu.Unlock()

	resp, err := c.post(ctx, body)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsSubmitting = false

	if err != nil {
		c.state.SubmitError = "Failed to send message. Please try again."
		return err
	}
	if resp.Error != "" {
		c.state.SubmitError = resp.Error
		return fmt.Errorf("formclient: server rejected submission: %s", resp.Error)
	}

	c.state.Fields = Fields{}
	c.state.Errors = map[string]string{}
	c.state.IsSubmitted = true
	return nil
}

func (c *Controller) post(ctx context.Context, body payload) (*apiResponse, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("formclient: decode response: %w", err)
	}
	if httpResp.StatusCode >= 400 && resp.Error == "" {
		resp.Error = fmt.Sprintf("Request failed with status %d", httpResp.StatusCode)
	}
	return &resp, nil
}
