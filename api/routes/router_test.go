package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bashfilms/quote-backend/internal/pricing"
	"github.com/bashfilms/quote-backend/internal/quotes"
	"github.com/bashfilms/quote-backend/pkg/config"
)

type stubService struct{}

func (stubService) Price(_ context.Context, in pricing.Input) (pricing.Input, pricing.Breakdown) {
	return in, pricing.Compute(in)
}

func (stubService) Validate(quotes.ContactInfo, []string) quotes.ValidationResult {
	return quotes.ValidationResult{Errors: map[string]string{}}
}

func (stubService) Submit(context.Context, quotes.SubmitInput) (*quotes.SubmitResult, error) {
	return &quotes.SubmitResult{}, nil
}

func (stubService) Confirmation(context.Context, string) (bool, error) {
	return false, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testRouter() http.Handler {
	return NewRouter(RouterParams{
		Config: &config.Config{
			App:     config.AppConfig{Env: "test"},
			Handoff: config.HandoffConfig{Strategy: config.StrategyMail},
		},
		Logger:       nil,
		QuoteService: stubService{},
		RedisPinger:  okPinger{},
		Registry:     prometheus.NewRegistry(),
	})
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterQuoteRoutes(t *testing.T) {
	router := testRouter()

	body := `{"location":"las_vegas","days":1,"rooms":1,"turnaround":"4w"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/price", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("price: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/quotes/confirmation?session=sess-1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("confirmation: expected 200 got %d", resp.Code)
	}
}

func TestRouterExposesMetrics(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200 got %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
