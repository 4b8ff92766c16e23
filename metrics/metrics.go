// Package metrics holds the Prometheus collectors exported by the ACS.
//
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/andaru/acs/cwmperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "acs"

// Session close reasons
const (
	ReasonComplete     = "complete"
	ReasonTerminated   = "terminated"
	ReasonDisconnected = "disconnected"
)

// Metrics is the set of ACS collectors
type Metrics struct {
	sessionsOpened   prometheus.Counter
	sessionsClosed   *prometheus.CounterVec
	rpcs             *prometheus.CounterVec
	commands         *prometheus.CounterVec
	errors           *prometheus.CounterVec
	warnings         prometheus.Counter
	exchangeDuration prometheus.Histogram
}

// New returns Metrics registered with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "opened_total",
			Help:      "CWMP sessions established by an Inform.",
		}),
		sessionsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "closed_total",
			Help:      "CWMP sessions closed, by reason.",
		}, []string{"reason"}),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cwmp",
			Name:      "rpcs_received_total",
			Help:      "Methods received from CPEs.",
		}, []string{"method"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cwmp",
			Name:      "commands_sent_total",
			Help:      "Queued commands sent to CPEs.",
		}, []string{"method"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cwmp",
			Name:      "errors_total",
			Help:      "Session errors, by kind.",
		}, []string{"kind"}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cwmp",
			Name:      "coercion_warnings_total",
			Help:      "Parameter values that could not be coerced to their declared type.",
		}),
		exchangeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "exchange_duration_seconds",
			Help:      "Time to process one HTTP exchange.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.sessionsOpened, m.sessionsClosed, m.rpcs, m.commands, m.errors, m.warnings, m.exchangeDuration)
	return m
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) SessionOpened() {
	if m != nil {
		m.sessionsOpened.Inc()
	}
}

func (m *Metrics) SessionClosed(reason string) {
	if m != nil {
		m.sessionsClosed.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) RPCReceived(method string) {
	if m != nil {
		m.rpcs.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) CommandSent(method string) {
	if m != nil {
		m.commands.WithLabelValues(method).Inc()
	}
}

// Error counts err by its cwmperr kind, or as "other"
func (m *Metrics) Error(err error) {
	if m == nil || err == nil {
		return
	}
	kind := "other"
	if k, ok := cwmperr.KindOf(err); ok {
		kind = k.String()
	}
	m.errors.WithLabelValues(kind).Inc()
}

func (m *Metrics) Warnings(n int) {
	if m != nil && n > 0 {
		m.warnings.Add(float64(n))
	}
}

func (m *Metrics) ObserveExchange(d time.Duration) {
	if m != nil {
		m.exchangeDuration.Observe(d.Seconds())
	}
}
