package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/tracecache"
)

// Adapter implements tracecache.Hooks and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	pageHits   *prometheus.CounterVec
	pageMisses prometheus.Counter
	fetchErrs  prometheus.Counter
	decodeErrs prometheus.Counter
}

var _ tracecache.Hooks = (*Adapter)(nil)

// New constructs a Prometheus hooks adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		pageHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "page_hits_total",
				Help:        "Page cache hits by source",
				ConstLabels: constLabels,
			},
			[]string{"source"},
		),
		pageMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "page_misses_total",
			Help:        "Page cache misses (upstream fetches)",
			ConstLabels: constLabels,
		}),
		fetchErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "fetch_errors_total",
			Help:        "Upstream fetch failures",
			ConstLabels: constLabels,
		}),
		decodeErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "decode_errors_total",
			Help:        "Typed getter decode failures",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.pageHits, a.pageMisses, a.fetchErrs, a.decodeErrs)
	return a
}

// PageHit increments the hit counter with a source label.
func (a *Adapter) PageHit(_ string, local bool) {
	a.pageHits.WithLabelValues(source(local)).Inc()
}

// PageMiss increments the miss counter.
func (a *Adapter) PageMiss(string) { a.pageMisses.Inc() }

// FetchError increments the fetch failure counter.
func (a *Adapter) FetchError(string, error) { a.fetchErrs.Inc() }

// DecodeError increments the decode failure counter.
func (a *Adapter) DecodeError(string, error) { a.decodeErrs.Inc() }

// source maps the local flag to a stable label value.
func source(local bool) string {
	if local {
		return "local"
	}
	return "store"
}
