// Package metrics exposes Prometheus counters and gauges for the session
// server, scraped over an optional HTTP endpoint.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every counter/gauge the server updates.
type Metrics struct {
	ConnectedClients  prometheus.Gauge
	ActiveSessions    prometheus.Gauge
	PacketsTotal      *prometheus.CounterVec
	HandshakeFailures prometheus.Counter
	DispatchErrors    *prometheus.CounterVec
}

// New registers every metric against a fresh registry.
func New() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vangers",
			Name:      "connected_clients",
			Help:      "Number of TCP connections currently accepted.",
		}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vangers",
			Name:      "active_sessions",
			Help:      "Number of games registered on the server.",
		}),
		PacketsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vangers",
			Name:      "packets_total",
			Help:      "Packets dispatched, labeled by action name.",
		}, []string{"action"}),
		HandshakeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vangers",
			Name:      "handshake_failures_total",
			Help:      "Connections that failed the initial handshake.",
		}),
		DispatchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vangers",
			Name:      "dispatch_errors_total",
			Help:      "Handler errors returned by the event loop, labeled by action name.",
		}, []string{"action"}),
	}, reg
}

// Serve starts the /metrics HTTP endpoint on addr until ctx is canceled.
func Serve(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Close()
	case err := <-errCh:
		return err
	}
}
