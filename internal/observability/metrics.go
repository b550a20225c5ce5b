package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total de mensagens recebidas pelo chat, por resultado",
		},
		[]string{"outcome"},
	)

	IntentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_intents_total",
			Help: "Intenções detectadas nas mensagens",
		},
		[]string{"intent"},
	)

	RetrievedItems = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_retrieved_items",
			Help:    "Itens injetados no contexto por mensagem",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
		[]string{"kind"},
	)

	LLMRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duração das chamadas ao modelo",
			Buckets: prometheus.DefBuckets,
		},
	)

	LLMErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_errors_total",
			Help: "Falhas nas chamadas ao modelo",
		},
		[]string{"reason"},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requisições recusadas pelo limite por IP",
		},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call twice.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ChatRequestsTotal,
			IntentsTotal,
			RetrievedItems,
			LLMRequestDuration,
			LLMErrorsTotal,
			RateLimitedTotal,
		)
	})
}

// Start exposes /metrics on its own port.
func Start(port string, logger zerolog.Logger) {
	Register()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, mux); err != nil {
			logger.Error().Err(err).Str("port", port).Msg("metrics server stopped")
		}
	}()
}
