package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobdigest_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	FetchedPostingsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobdigest_postings_fetched_total",
			Help: "Total number of postings returned by sources.",
		},
		[]string{"source"},
	)
	NewPostingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobdigest_postings_new_total",
			Help: "Total number of postings not seen before.",
		},
	)
	DigestsSentCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobdigest_digests_sent_total",
			Help: "Total number of digests handed to the mail transport.",
		},
		[]string{"digest"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobdigest_run_duration_seconds",
			Help:    "Duration of each pipeline run in seconds.",
			Buckets: []float64{5, 15, 30, 60, 120, 300},
		},
	)
)

var registerOnce sync.Once

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(FetchedPostingsCounter)
		prometheus.MustRegister(NewPostingsCounter)
		prometheus.MustRegister(DigestsSentCounter)
		prometheus.MustRegister(RunDuration)
	})
}

func StartMetricsServer(address string) {
	Register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, mux))
	}()
	log.Infof("metrics server listening on %s", address)
}

// WriteTextfile dumps the registry in the node-exporter textfile format, for one-shot runs.
func WriteTextfile(path string) error {
	Register()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
