package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/ratelimit"
	"go-agency-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// User-facing outcome messages. Part of the API contract.
const (
	MsgSent        = "Message sent successfully!"
	MsgSendFailed  = "Failed to send email. Please try again."
	MsgConfigError = "Email service configuration error. Please contact support."
	MsgTimeout     = "Request timeout. Please try again."
	MsgRateLimited = "Too many requests. Please wait before trying again."
)

type contactUsecase struct {
	dispatcher      domain.ContactDispatcher
	limiter         ratelimit.Limiter
	validate        *validator.Validate
	dispatchTimeout time.Duration
}

// NewContactUsecase creates the contact submission pipeline. The dispatch
// timeout is the inner budget for the relay round-trip; it should leave
// headroom under the server write timeout.
func NewContactUsecase(dispatcher domain.ContactDispatcher, limiter ratelimit.Limiter, validate *validator.Validate, dispatchTimeout time.Duration) domain.ContactUsecase {
	return &contactUsecase{
		dispatcher:      dispatcher,
		limiter:         limiter,
		validate:        validate,
		dispatchTimeout: dispatchTimeout,
	}
}

// SubmitContact runs one submission end to end: trim → validate → admission
// check → dispatch raced against the timeout. Expected failures come back as
// *apperror.AppError; nothing here retries.
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest, clientID string) error {
	// The dispatcher must see the trimmed values, and the validators assume
	// whitespace-only means empty.
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ProjectDetails = strings.TrimSpace(req.ProjectDetails)

	if err := uc.validate.Struct(req); err != nil {
		return apperror.BadRequest(validation.ContactMessage(err))
	}

	res, err := uc.limiter.Check(ctx, clientID)
	if err != nil {
		// An unavailable limiter is a server defect, not an implicit allow.
		return apperror.Internal(err)
	}
	if !res.Allowed {
		return apperror.TooManyRequests(MsgRateLimited, res.RetryAfter)
	}

	outcome := uc.dispatchWithTimeout(ctx, req)
	switch outcome {
	case domain.OutcomeSent:
		return nil
	case domain.OutcomeConfigMissing:
		return apperror.New(http.StatusInternalServerError, MsgConfigError, nil)
	case domain.OutcomeTimedOut:
		return apperror.RequestTimeout(MsgTimeout)
	default:
		return apperror.New(http.StatusInternalServerError, MsgSendFailed, nil)
	}
}

// dispatchWithTimeout races the relay send against the dispatch budget.
// First settled wins. When the timer fires the send keeps running detached
// and its result is discarded: cancelling an in-flight SMTP handshake would
// not reliably prevent delivery anyway, so the caller may be told "timeout"
// for a message that still arrives.
func (uc *contactUsecase) dispatchWithTimeout(ctx context.Context, req *domain.ContactRequest) domain.DispatchOutcome {
	outcomeCh := make(chan domain.DispatchOutcome, 1)
	go func() {
		defer func() {
			// A panicking dispatcher in this detached goroutine would take
			// down the process; contain it and report a failed send.
			if r := recover(); r != nil {
				logger.Log.Error("dispatcher panicked", "panic", r)
				outcomeCh <- domain.OutcomeTransportFailure
			}
		}()
		outcomeCh <- uc.dispatcher.SendNotification(context.WithoutCancel(ctx), req)
	}()

	select {
	case outcome := <-outcomeCh:
		return outcome
	case <-time.After(uc.dispatchTimeout):
		return domain.OutcomeTimedOut
	}
}
