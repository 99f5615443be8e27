// Package api exposes the natlas HTTP surface: video processing, transcript
// search, health, and metrics. All request and response bodies are JSON; the
// matching cores receive plain structured data and know nothing about HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/natlasdev/natlas/pkg/logging"
	"github.com/natlasdev/natlas/pkg/transcripts"
	"github.com/natlasdev/natlas/services/pipeline"
)

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address in host:port form.
	Addr string

	// Pipeline handles process-video requests.
	Pipeline *pipeline.Service

	// Searcher handles search requests.
	Searcher *transcripts.Searcher

	// Logger receives request logs.
	Logger logging.Logger

	// Registry collects the API metrics. Defaults to the global registry.
	Registry *prometheus.Registry

	// ModelLoaded is reported by the health endpoint.
	ModelLoaded bool
}

// NewServer builds the router and returns a configured http.Server.
func NewServer(opts Options) *http.Server {
	var reg prometheus.Registerer = prometheus.DefaultRegisterer
	gatherer := prometheus.DefaultGatherer
	if opts.Registry != nil {
		reg = opts.Registry
		gatherer = opts.Registry
	}

	metrics := NewMetrics(reg)

	h := &handlers{
		pipeline:    opts.Pipeline,
		searcher:    opts.Searcher,
		log:         opts.Logger,
		metrics:     metrics,
		modelLoaded: opts.ModelLoaded,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(instrument(opts.Logger, metrics))

	r.Get("/health", h.handleHealth)
	r.Post("/process-video", h.handleProcessVideo)
	r.Post("/search", h.handleSearch)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
