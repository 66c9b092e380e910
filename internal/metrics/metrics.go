// Package metrics registers the Prometheus collectors every teacher service's
// go.mod pulls in (client_golang) but none of the read source files actually
// register; the sales/sync/inventory paths are exactly the counters a POS
// backend would want on the dashboard next to the HTTP latency histogram.
// Only HTTPRequestDuration is observed (by the HTTP middleware); the sales,
// insufficient-stock, sync and ledger counters are registered and exported
// but nothing in this module increments them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_core_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	SalesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_core_sales_created_total",
		Help: "Count of sales created in PENDING state.",
	})

	SalesConfirmedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_core_sales_confirmed_total",
		Help: "Count of sales confirmed, by resulting status.",
	}, []string{"status"})

	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_core_insufficient_stock_total",
		Help: "Count of availability checks that failed with insufficient_stock.",
	})

	SyncEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_core_sync_events_total",
		Help: "Offline sync events processed, by outcome.",
	}, []string{"event_type", "status"})

	LedgerMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_core_ledger_movements_total",
		Help: "Inventory ledger rows appended, by movement type.",
	}, []string{"movement_type"})
)
