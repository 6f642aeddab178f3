package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,contact_email"`
	Phone          string `json:"phone,omitempty" validate:"omitempty,contact_phone"`
	ProjectDetails string `json:"projectDetails,omitempty" validate:"omitempty,project_details"`
}

// DispatchOutcome is the typed result of handing a submission to the relay.
// It is transient: the usecase maps it onto an HTTP response and drops it.
type DispatchOutcome int

const (
	OutcomeSent DispatchOutcome = iota
	// OutcomeConfigMissing covers both absent relay settings and relay
	// responses that look like credential failures.
	OutcomeConfigMissing
	OutcomeTransportFailure
	OutcomeTimedOut
)

func (o DispatchOutcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeConfigMissing:
		return "config_missing"
	case OutcomeTransportFailure:
		return "transport_failure"
	case OutcomeTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// ContactDispatcher delivers one validated submission to the operator inbox.
type ContactDispatcher interface {
	SendNotification(ctx context.Context, req *ContactRequest) DispatchOutcome
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SubmitContact validates, rate-limits and dispatches one submission.
	// clientID identifies the caller for admission control (normally the IP).
	SubmitContact(ctx context.Context, req *ContactRequest, clientID string) error
}
