// Package metrics wires up a self-contained Prometheus registry for the
// catalog service. Using our own registry rather than the global one keeps
// the /metrics output limited to what we register here.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons recorded on the orders_rejected_total counter.
const (
	ReasonSoldOut   = "sold_out"
	ReasonDuplicate = "duplicate"
	ReasonInvalid   = "invalid"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersAccepted prometheus.Counter
	OrdersRejected *prometheus.CounterVec
	Requests       *prometheus.CounterVec
	RequestSeconds prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersAccepted := prometheus.NewCounter(prometheus.CounterOpts{Name: "catalog_orders_accepted_total"})
	ordersRejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_orders_rejected_total"}, []string{"reason"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "catalog_http_requests_total"}, []string{"method", "status"})
	requestSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_http_request_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersAccepted, ordersRejected, requests, requestSeconds)
	return &Registry{
		reg:            r,
		OrdersAccepted: ordersAccepted,
		OrdersRejected: ordersRejected,
		Requests:       requests,
		RequestSeconds: requestSeconds,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
