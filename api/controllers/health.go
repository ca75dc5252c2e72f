package controllers

import (
	"context"
	"net/http"

	"github.com/bashfilms/quote-backend/api/responses"
	"github.com/bashfilms/quote-backend/pkg/config"
	pkgerrors "github.com/bashfilms/quote-backend/pkg/errors"
	"github.com/bashfilms/quote-backend/pkg/logger"
)

// Pinger is the connectivity probe a dependency exposes for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NamedPinger pairs a probe with the name reported on failure.
type NamedPinger struct {
	Name   string
	Pinger Pinger
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BashQuote-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every registered dependency. Nil pingers are skipped so
// deployments without the frame strategy simply omit Pub/Sub.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...NamedPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-BashQuote-Env", cfg.App.Env)

		for _, dep := range deps {
			if dep.Pinger == nil {
				continue
			}
			if err := dep.Pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, dep.Name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
