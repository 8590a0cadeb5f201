package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Health         *HealthHandler
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	// RequestsPerMinute caps status requests per client IP; zero disables it.
	RequestsPerMinute int
}

// NewRouter serves the console's status endpoints.
func NewRouter(opts RouterOptions) http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Heartbeat("/ping"))
	mux.Use(middleware.Recoverer)
	if opts.RequestsPerMinute > 0 {
		mux.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}

	mux.Get("/health", opts.Health.Health)
	mux.Get("/health/ready", opts.Health.Ready)
	mux.Get("/health/live", opts.Health.Live)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return mux
}
