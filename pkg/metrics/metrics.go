package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DomainMetrics records order and coupon activity.
type DomainMetrics struct {
	ordersPlaced      prometheus.Counter
	statusTransitions *prometheus.CounterVec
	couponRedemptions *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

// NewDomainMetrics registers the domain metrics on the provided registerer.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders created through checkout.",
	})
	statusTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	couponRedemptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Coupon redemption attempts by outcome.",
	}, []string{"outcome"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	reg.MustRegister(ordersPlaced, statusTransitions, couponRedemptions, requestDuration)
	return &DomainMetrics{
		ordersPlaced:      ordersPlaced,
		statusTransitions: statusTransitions,
		couponRedemptions: couponRedemptions,
		requestDuration:   requestDuration,
	}
}

// IncOrderPlaced counts one placed order.
func (m *DomainMetrics) IncOrderPlaced() {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// IncStatusTransition counts one status transition toward the given status.
func (m *DomainMetrics) IncStatusTransition(status string) {
	if m == nil || m.statusTransitions == nil {
		return
	}
	m.statusTransitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncCouponRedemption counts one redemption attempt by outcome.
func (m *DomainMetrics) IncCouponRedemption(outcome string) {
	if m == nil || m.couponRedemptions == nil {
		return
	}
	m.couponRedemptions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveRequest records the duration for the named route.
func (m *DomainMetrics) ObserveRequest(route string, duration time.Duration) {
	if m == nil || m.requestDuration == nil {
		return
	}
	m.requestDuration.WithLabelValues(normalizeLabel(route)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
