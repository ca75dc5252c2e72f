package quotes

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bashfilms/quote-backend/internal/handoff"
	"github.com/bashfilms/quote-backend/internal/pricing"
	"github.com/bashfilms/quote-backend/pkg/config"
	pkgerrors "github.com/bashfilms/quote-backend/pkg/errors"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/metrics"
	"github.com/bashfilms/quote-backend/pkg/redis"
	"go.uber.org/multierr"
)

const (
	scopeLabelIn  = "in_scope"
	scopeLabelOut = "out_of_scope"
)

// Service is the quote workflow: price on every change, validate the contact
// gate, dispatch a completed request, and report the confirmation flag.
type Service interface {
	Price(ctx context.Context, in pricing.Input) (pricing.Input, pricing.Breakdown)
	Validate(contact ContactInfo, touched []string) ValidationResult
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	Confirmation(ctx context.Context, session string) (bool, error)
}

// ValidationResult reports gate errors for the fields the user has touched
// and whether the form as a whole may submit.
type ValidationResult struct {
	Errors    map[string]string
	CanSubmit bool
}

// SubmitInput is one submit action: the session of the widget instance plus a
// snapshot of selections and contact data.
type SubmitInput struct {
	Session   string
	Selection pricing.Input
	Contact   ContactInfo
}

// SubmitResult echoes the dispatch receipt and the price the customer saw.
type SubmitResult struct {
	Receipt      handoff.Receipt
	DisplayPrice string
}

// ServiceParams collects the service dependencies.
type ServiceParams struct {
	Submitter handoff.Submitter
	Flags     redis.FlagStore
	Handoff   config.HandoffConfig
	Logger    *logger.Logger
	Metrics   *metrics.QuoteMetrics
	Now       func() time.Time
}

type service struct {
	submitter handoff.Submitter
	flags     redis.FlagStore
	cfg       config.HandoffConfig
	logg      *logger.Logger
	metrics   *metrics.QuoteMetrics
	now       func() time.Time
}

// NewService validates dependencies and builds the quote service.
func NewService(params ServiceParams) (Service, error) {
	if params.Submitter == nil {
		return nil, errors.New("handoff submitter is required")
	}
	if params.Flags == nil {
		return nil, errors.New("flag store is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		submitter: params.Submitter,
		flags:     params.Flags,
		cfg:       params.Handoff,
		logg:      params.Logger,
		metrics:   params.Metrics,
		now:       now,
	}, nil
}

// NormalizeInput applies the input-collection boundary rules. Single-day
// bookings are not offered outside Las Vegas, so the duration is corrected to
// two days before it ever reaches the engine.
func NormalizeInput(in pricing.Input) pricing.Input {
	if in.Location != pricing.LocationLasVegas && in.Days == pricing.MinDays {
		in.Days = pricing.MinDays + 1
	}
	if in.Hotel == "" {
		in.Hotel = pricing.HotelBashPays
	}
	return in
}

// Price normalizes the selections and computes the full breakdown. The
// normalized input is returned so the caller can echo the corrected state.
func (s *service) Price(ctx context.Context, in pricing.Input) (pricing.Input, pricing.Breakdown) {
	normalized := NormalizeInput(in)

	start := s.now()
	b := pricing.Compute(normalized)

	scope := scopeLabelIn
	if b.OutOfScope {
		scope = scopeLabelOut
	}
	s.metrics.ObserveCompute(scope, time.Since(start))
	s.metrics.IncComputed(scope)

	return normalized, b
}

// Validate reports gate errors for the touched fields only; untouched fields
// stay silent until the user reaches them. CanSubmit always reflects the full
// gate. A nil touched list reports everything, which is what submit uses.
func (s *service) Validate(contact ContactInfo, touched []string) ValidationResult {
	full := contact.Validate()

	visible := full
	if touched != nil {
		visible = map[string]string{}
		for _, field := range touched {
			if msg, ok := full[strings.TrimSpace(field)]; ok {
				visible[strings.TrimSpace(field)] = msg
			}
		}
	}

	return ValidationResult{Errors: visible, CanSubmit: len(full) == 0}
}

// Submit runs the gate, guards against double-sends, and dispatches the quote
// through the configured strategy.
func (s *service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	session := strings.TrimSpace(in.Session)
	if session == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session is required")
	}

	if gateErrs := in.Contact.Validate(); len(gateErrs) > 0 {
		var combined error
		for field, msg := range gateErrs {
			combined = multierr.Append(combined, errors.New(field+": "+msg))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "contact details incomplete").
			WithDetails(gateErrs)
	}

	selection := NormalizeInput(in.Selection)
	breakdown := pricing.Compute(selection)

	contact := in.Contact
	contact.ApplyDefaultEventDate(s.now())

	// One dispatch per session while the sending indicator is live.
	sendingKey := s.flags.SendingKey(session)
	acquired, err := s.flags.SetNX(ctx, sendingKey, "1", s.cfg.SendingTTL())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserving submission slot")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a submission is already in flight for this session")
	}

	summary := Summary(contact, selection, breakdown)
	req := handoff.Request{
		Session: session,
		Subject: Subject(contact, selection),
		Body:    summary,
		Payload: handoff.Payload{
			Name:    contact.Name,
			Email:   contact.Email,
			Phone:   contact.Phone,
			Message: summary,
		},
	}

	receipt, err := s.submitter.Submit(ctx, req)
	if err != nil {
		if delErr := s.flags.Del(ctx, sendingKey); delErr != nil {
			s.logg.Error(ctx, "failed to release sending flag", delErr)
		}
		s.metrics.IncSubmitFailure(s.submitter.Strategy())
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "dispatching quote")
	}

	s.metrics.IncSubmission(receipt.Strategy)
	logCtx := s.logg.WithStrategy(s.logg.WithSessionID(ctx, session), receipt.Strategy)
	s.logg.Info(logCtx, "quote submitted")

	return &SubmitResult{
		Receipt:      receipt,
		DisplayPrice: breakdown.DisplayPrice(),
	}, nil
}

// Confirmation reports whether the hosting page has acknowledged a
// submission for this session. The flag expires on its own.
func (s *service) Confirmation(ctx context.Context, session string) (bool, error) {
	ok, err := s.flags.Exists(ctx, s.flags.ConfirmationKey(strings.TrimSpace(session)))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking confirmation flag")
	}
	return ok, nil
}
