// Package metrics collects and exposes Prometheus metrics for the
// HTTP surface and the save pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	booksSaved      prometheus.Counter
	idStampFailures prometheus.Counter
	catalogRequests *prometheus.CounterVec
}

// NewCollector registers the application metrics on the given registry.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reader_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reader_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		booksSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reader_books_saved_total",
			Help: "Books successfully persisted.",
		}),
		idStampFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reader_id_stamp_failures_total",
			Help: "Saves where the id write-back step failed.",
		}),
		catalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reader_catalog_requests_total",
			Help: "Upstream catalog requests by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.booksSaved,
		c.idStampFailures,
		c.catalogRequests,
	)

	return c
}

// Gatherer exposes the registry for the scrape endpoint.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *Collector) RecordBookSaved() {
	c.booksSaved.Inc()
}

func (c *Collector) RecordIDStampFailure() {
	c.idStampFailures.Inc()
}

func (c *Collector) RecordCatalogRequest(outcome string) {
	c.catalogRequests.WithLabelValues(outcome).Inc()
}

// GinMiddleware records per-request counters and latency. The route
// template is used as the label so path parameters do not explode
// cardinality.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.requestsTotal.WithLabelValues(
			ctx.Request.Method,
			route,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()
		c.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the scrape endpoint handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
