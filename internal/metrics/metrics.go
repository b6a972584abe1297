package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "filesearch"

// Query outcome label values.
const (
	OutcomeAnswered = "answered"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
)

// Search engine Prometheus metrics.
var (
	DocumentsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_ingested_total",
		Help:      "Total number of documents ingested",
	})

	DocumentsDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_deleted_total",
		Help:      "Total number of documents deleted",
	})

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total queries by outcome",
		},
		[]string{"outcome"}, // "answered" / "empty" / "rejected"
	)

	IngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingest_duration_seconds",
		Help:      "Batch ingestion duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	QueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Query cycle duration in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
)

var registered bool

// Register registers all collectors with the default registry. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(DocumentsIngestedTotal)
	prometheus.MustRegister(DocumentsDeletedTotal)
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(IngestDuration)
	prometheus.MustRegister(QueryDuration)
	registered = true
}

// Snapshot renders the current filesearch metrics as one sorted line,
// suitable for a session-end log entry. Only registered collectors
// appear.
func Snapshot() string {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return ""
	}

	var parts []string
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, namespace+"_") {
			continue
		}
		short := strings.TrimPrefix(name, namespace+"_")

		for _, m := range mf.GetMetric() {
			label := ""
			if pairs := m.GetLabel(); len(pairs) > 0 {
				kv := make([]string, 0, len(pairs))
				for _, p := range pairs {
					kv = append(kv, p.GetName()+"="+p.GetValue())
				}
				label = "{" + strings.Join(kv, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				parts = append(parts, fmt.Sprintf("%s%s=%v", short, label, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				parts = append(parts, fmt.Sprintf("%s_count%s=%d", short, label, m.GetHistogram().GetSampleCount()))
			}
		}
	}

	sort.Strings(parts)
	return strings.Join(parts, " ")
}
