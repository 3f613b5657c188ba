package metrics

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPC metrics
	rpcRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_rpc_requests_total",
			Help: "Total number of RPC requests sent to chain nodes",
		},
		[]string{"network", "method"},
	)

	rpcRequestTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_rpc_request_duration_seconds",
			Help:    "Duration of RPC requests sent to chain nodes",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network", "method"},
	)

	rpcErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_rpc_errors_total",
			Help: "Total number of failed RPC requests",
		},
		[]string{"network", "method"},
	)

	// Queue metrics
	queueTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_queue_tasks_total",
			Help: "Total number of handled tasks by resulting status",
		},
		[]string{"handler", "status"},
	)

	queueTaskTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_queue_task_duration_seconds",
			Help:    "Duration of task handler runs",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"handler"},
	)

	queueDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_queue_dispatched_total",
			Help: "Total number of tasks published to workers",
		},
		[]string{"handler"},
	)

	// Sync metrics
	SyncHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scanner_history_sync_height",
			Help: "The last block height reached by a history sync",
		},
		[]string{"network", "contract"},
	)

	interactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_interactions_recorded_total",
			Help: "Total number of new wallet interactions recorded",
		},
		[]string{"network"},
	)

	// Poller metrics
	pollerTickTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_poller_tick_duration_seconds",
			Help:    "Duration of one live poll tick",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network"},
	)

	pollerEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_poller_events_published_total",
			Help: "Total number of live events published",
		},
		[]string{"network"},
	)

	// HTTP metrics
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanner_http_requests_total",
			Help: "Total number of API requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scanner_http_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanner_uptime_seconds",
			Help: "Time since the process started",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scanner_goroutines",
			Help: "Number of running goroutines",
		},
	)

	startTime = time.Now()
)

func RPCRequestInc(network string, method string) {
	rpcRequests.WithLabelValues(network, method).Inc()
}

func RPCRequestDuration(network string, method string, duration time.Duration) {
	rpcRequestTime.WithLabelValues(network, method).Observe(duration.Seconds())
}

func RPCErrorsInc(network string, method string) {
	rpcErrors.WithLabelValues(network, method).Inc()
}

func QueueTaskInc(handler string, status string) {
	queueTasks.WithLabelValues(handler, status).Inc()
}

func QueueTaskDuration(handler string, duration time.Duration) {
	queueTaskTime.WithLabelValues(handler).Observe(duration.Seconds())
}

func QueueDispatchedInc(handler string) {
	queueDispatched.WithLabelValues(handler).Inc()
}

func SyncHeightSet(network string, contract string, height uint64) {
	SyncHeight.WithLabelValues(network, contract).Set(float64(height))
}

func InteractionsRecordedInc(network string, count int) {
	interactionsRecorded.WithLabelValues(network).Add(float64(count))
}

func PollerTickDuration(network string, duration time.Duration) {
	pollerTickTime.WithLabelValues(network).Observe(duration.Seconds())
}

func PollerEventsPublishedInc(network string, count int) {
	pollerEventsPublished.WithLabelValues(network).Add(float64(count))
}

func HTTPRequestObserve(method string, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestTime.WithLabelValues(method, route).Observe(duration.Seconds())
}

// UpdateSystemMetrics refreshes the process level gauges
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
