package quotes

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bashfilms/quote-backend/internal/handoff"
	"github.com/bashfilms/quote-backend/internal/pricing"
	"github.com/bashfilms/quote-backend/pkg/config"
	pkgerrors "github.com/bashfilms/quote-backend/pkg/errors"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	requests []handoff.Request
	err      error
}

func (f *fakeSubmitter) Strategy() string { return "mail" }

func (f *fakeSubmitter) Submit(_ context.Context, req handoff.Request) (handoff.Receipt, error) {
	if f.err != nil {
		return handoff.Receipt{}, f.err
	}
	f.requests = append(f.requests, req)
	return handoff.Receipt{Strategy: "mail", Dispatched: true, MailtoURI: "mailto:mbashian@bashfilms.com"}, nil
}

type fakeFlags struct {
	keys     map[string]time.Duration
	setNXErr error
	taken    bool
	deleted  []string
}

func newFakeFlags() *fakeFlags {
	return &fakeFlags{keys: map[string]time.Duration{}}
}

func (f *fakeFlags) SetNX(_ context.Context, key string, _ any, ttl time.Duration) (bool, error) {
	if f.setNXErr != nil {
		return false, f.setNXErr
	}
	if f.taken {
		return false, nil
	}
	f.keys[key] = ttl
	return true, nil
}

func (f *fakeFlags) Set(_ context.Context, key string, _ any, ttl time.Duration) error {
	f.keys[key] = ttl
	return nil
}

func (f *fakeFlags) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.keys[key]
	return ok, nil
}

func (f *fakeFlags) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.keys, key)
		f.deleted = append(f.deleted, key)
	}
	return nil
}

func (f *fakeFlags) SendingKey(session string) string      { return "bq:sending:" + session }
func (f *fakeFlags) ConfirmationKey(session string) string { return "bq:confirmation:" + session }

func handoffConfig() config.HandoffConfig {
	return config.HandoffConfig{
		Strategy:        config.StrategyMail,
		DispatchDelay:   800 * time.Millisecond,
		SendingLinger:   time.Second,
		ConfirmationTTL: 10 * time.Second,
	}
}

func newTestService(t *testing.T, submitter handoff.Submitter, flags *fakeFlags) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "quotes-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Submitter: submitter,
		Flags:     flags,
		Handoff:   handoffConfig(),
		Logger:    logg,
		Now:       func() time.Time { return time.Date(2026, time.June, 29, 10, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func validSubmit() SubmitInput {
	return SubmitInput{
		Session: "sess-1",
		Selection: pricing.Input{
			Location:   pricing.LocationLasVegas,
			Days:       2,
			Rooms:      1,
			Turnaround: pricing.TurnaroundFourWeeks,
		},
		Contact: demoContact(),
	}
}

func TestPriceNormalizesSingleDayAwayBookings(t *testing.T) {
	svc := newTestService(t, &fakeSubmitter{}, newFakeFlags())

	in := pricing.Input{Location: pricing.LocationOtherUSCity, Days: 1, Rooms: 1, Turnaround: pricing.TurnaroundFourWeeks}
	normalized, b := svc.Price(context.Background(), in)

	assert.Equal(t, 2, normalized.Days, "away bookings have a two-day minimum")
	assert.Equal(t, pricing.HotelBashPays, normalized.Hotel)
	assert.False(t, b.OutOfScope)
}

func TestPriceLeavesHomeMarketSingleDayAlone(t *testing.T) {
	svc := newTestService(t, &fakeSubmitter{}, newFakeFlags())

	in := pricing.Input{Location: pricing.LocationLasVegas, Days: 1, Rooms: 1, Turnaround: pricing.TurnaroundFourWeeks}
	normalized, b := svc.Price(context.Background(), in)

	assert.Equal(t, 1, normalized.Days)
	assert.Equal(t, "$2,000.00", b.DisplayPrice())
}

func TestValidateFiltersToTouchedFields(t *testing.T) {
	svc := newTestService(t, &fakeSubmitter{}, newFakeFlags())

	result := svc.Validate(ContactInfo{}, []string{FieldEmail})
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors, FieldEmail)
	assert.False(t, result.CanSubmit, "untouched failing fields still block submission")

	full := svc.Validate(ContactInfo{}, nil)
	assert.Len(t, full.Errors, 3)
}

func TestSubmitDispatchesAndSetsSendingFlag(t *testing.T) {
	submitter := &fakeSubmitter{}
	flags := newFakeFlags()
	svc := newTestService(t, submitter, flags)

	result, err := svc.Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	assert.True(t, result.Receipt.Dispatched)
	assert.Equal(t, "$3,678.75", result.DisplayPrice)

	require.Len(t, submitter.requests, 1)
	req := submitter.requests[0]
	assert.Equal(t, "sess-1", req.Session)
	assert.True(t, strings.HasPrefix(req.Subject, "Quote request – Tech Summit"))
	assert.Equal(t, req.Body, req.Payload.Message)
	assert.Contains(t, req.Body, "Starting price: $3,678.75")

	ttl, ok := flags.keys["bq:sending:sess-1"]
	require.True(t, ok, "sending flag must be set")
	assert.Equal(t, 1800*time.Millisecond, ttl)
}

func TestSubmitRejectsIncompleteContact(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := newTestService(t, submitter, newFakeFlags())

	in := validSubmit()
	in.Contact.Email = "not-an-email"

	_, err := svc.Submit(context.Background(), in)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Empty(t, submitter.requests, "gated submissions must not dispatch")
}

func TestSubmitRequiresSession(t *testing.T) {
	svc := newTestService(t, &fakeSubmitter{}, newFakeFlags())

	in := validSubmit()
	in.Session = "  "

	_, err := svc.Submit(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestSubmitBlocksWhileSendingFlagHeld(t *testing.T) {
	submitter := &fakeSubmitter{}
	flags := newFakeFlags()
	flags.taken = true
	svc := newTestService(t, submitter, flags)

	_, err := svc.Submit(context.Background(), validSubmit())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	assert.Empty(t, submitter.requests)
}

func TestSubmitReleasesFlagWhenDispatchErrors(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("bad request payload")}
	flags := newFakeFlags()
	svc := newTestService(t, submitter, flags)

	_, err := svc.Submit(context.Background(), validSubmit())
	require.Error(t, err)
	assert.Contains(t, flags.deleted, "bq:sending:sess-1")
}

func TestSubmitAppliesDefaultEventDate(t *testing.T) {
	submitter := &fakeSubmitter{}
	svc := newTestService(t, submitter, newFakeFlags())

	in := validSubmit()
	in.Contact.EventMonth = 0
	in.Contact.EventDay = 0
	in.Contact.EventYear = 0

	_, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, submitter.requests, 1)
	assert.Contains(t, submitter.requests[0].Body, "September 12, 2026")
}

func TestConfirmationReflectsFlag(t *testing.T) {
	flags := newFakeFlags()
	svc := newTestService(t, &fakeSubmitter{}, flags)

	ok, err := svc.Confirmation(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, flags.Set(context.Background(), flags.ConfirmationKey("sess-1"), "1", 10*time.Second))

	ok, err = svc.Confirmation(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
