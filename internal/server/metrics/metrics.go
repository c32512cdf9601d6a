// Package metrics exposes Prometheus metrics of the matchmaking server.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueueToggles counts successful queue toggles.
	// Labels: state (on, off)
	QueueToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "queue",
			Name:      "toggles_total",
			Help:      "Total number of queue toggles by requested state",
		},
		[]string{"state"},
	)

	// QueueDepth is the number of waiting users seen after the last queue change.
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "langmatch",
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of users waiting in the matchmaking queue",
		},
	)

	// MatchRequests counts requestMatch outcomes.
	// Labels: outcome (matched, existing, queued, error)
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "matcher",
			Name:      "requests_total",
			Help:      "Total number of match requests by outcome",
		},
		[]string{"outcome"},
	)

	// StaleEntriesPurged counts queue entries removed because their owner
	// was gone or already matched.
	StaleEntriesPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "matcher",
			Name:      "stale_entries_purged_total",
			Help:      "Total number of stale queue entries purged during pairing",
		},
	)

	// TxConflicts counts transactions retried after losing a commit race.
	// Labels: operation
	TxConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "storage",
			Name:      "tx_conflicts_total",
			Help:      "Total number of transaction commit conflicts by operation",
		},
		[]string{"operation"},
	)

	// MatchesEnded counts matches moved from active to ended.
	MatchesEnded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "matches",
			Name:      "ended_total",
			Help:      "Total number of matches ended",
		},
	)

	// MatchesCreated counts created matches.
	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "matches",
			Name:      "created_total",
			Help:      "Total number of matches created",
		},
	)

	// MessagesSent counts stored chat messages.
	// Labels: moderated (true, false)
	MessagesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "langmatch",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Total number of chat messages stored",
		},
		[]string{"moderated"},
	)

	// RPCDuration tracks gRPC handler latency.
	// Labels: method, code
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "langmatch",
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Duration of gRPC requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "code"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
