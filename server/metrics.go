package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/oauth-callback/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess       = "success"
	exchangeOutcomeOK    = "ok"
	exchangeOutcomeError = "rejected"
	exchangeOutcomeFail  = "failed"
)

type callbackMetrics struct {
	redirects        *prometheus.CounterVec
	exchangeDuration *prometheus.HistogramVec
	handler          http.Handler
}

func newCallbackMetrics(registry *prometheus.Registry) (*callbackMetrics, error) {
	m := &callbackMetrics{
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth_callback_redirects_total",
			Help: "Redirects issued by the OAuth callback, by outcome",
		}, []string{"outcome"}),
		exchangeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oauth_token_exchange_duration_seconds",
			Help:    "Latency of calls to the token endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}

	for _, c := range []prometheus.Collector{m.redirects, m.exchangeDuration} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *callbackMetrics) observeRedirect(outcome string) {
	m.redirects.WithLabelValues(outcome).Inc()
}

func (m *callbackMetrics) observeExchange(start time.Time, result *token.Result, err error) {
	outcome := exchangeOutcomeOK
	switch {
	case err != nil || result == nil:
		outcome = exchangeOutcomeFail
	case !result.OK():
		outcome = exchangeOutcomeError
	}
	m.exchangeDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
