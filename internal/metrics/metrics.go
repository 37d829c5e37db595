package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors updated by the sync pipeline and the
// timeline processor. One instance is shared between the poller loop
// and the on-demand trigger handler.
type Metrics struct {
	EventsIngested   prometheus.Counter
	EventsDuplicate  prometheus.Counter
	EventsPrivate    prometheus.Counter
	FeedFailures     *prometheus.CounterVec
	SubEventsApplied prometheus.Counter
	SubEventsSkipped prometheus.Counter
	Runs             *prometheus.CounterVec
	RunDuration      prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		EventsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "events_ingested_total",
			Help:      "Number of new event records persisted",
		}),
		EventsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "events_duplicate_total",
			Help:      "Number of already-seen events skipped by the existence index",
		}),
		EventsPrivate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "events_private_filtered_total",
			Help:      "Number of non-public events dropped by the private filter",
		}),
		FeedFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "feed_failures_total",
			Help:      "Number of outbound feed fetches degraded to an empty result",
		}, []string{"feed"}),
		SubEventsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "subevents_applied_total",
			Help:      "Number of issue sub-events replayed onto aggregates",
		}),
		SubEventsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "subevents_skipped_total",
			Help:      "Number of issue sub-events with no matching aggregate",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracker",
			Name:      "runs_total",
			Help:      "Number of sync runs by outcome",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tracker",
			Name:      "run_duration_seconds",
			Help:      "Wall time of one full sync pass",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
}

// Register registers all collectors on the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.EventsIngested, m.EventsDuplicate, m.EventsPrivate,
		m.FeedFailures, m.SubEventsApplied, m.SubEventsSkipped,
		m.Runs, m.RunDuration,
	)
}
