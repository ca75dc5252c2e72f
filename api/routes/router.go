package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bashfilms/quote-backend/api/controllers"
	"github.com/bashfilms/quote-backend/api/middleware"
	"github.com/bashfilms/quote-backend/internal/quotes"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/bashfilms/quote-backend/pkg/logger"
)

// RouterParams collects everything the HTTP surface depends on. RedisPinger
// is required; PubSubPinger is nil for mail-only deployments.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	QuoteService quotes.Service
	RedisPinger  controllers.Pinger
	PubSubPinger controllers.Pinger
	Registry     *prometheus.Registry
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Handoff.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.NamedPinger{Name: "redis", Pinger: params.RedisPinger},
			controllers.NamedPinger{Name: "pubsub", Pinger: params.PubSubPinger},
		))
	})

	if params.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/quotes", func(r chi.Router) {
		r.Post("/price", controllers.PriceQuote(params.QuoteService, logg))
		r.Post("/validate", controllers.ValidateContact(params.QuoteService, logg))
		r.Post("/submit", controllers.SubmitQuote(params.QuoteService, logg))
		r.Get("/confirmation", controllers.QuoteConfirmation(params.QuoteService, logg))
	})

	return r
}
