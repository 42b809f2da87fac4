package metrics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/theGhostJW/zenith-with-typescript-sub000/types"
)

const (
	MetricsNamespace = "zenith"
)

// Results a summarisation can be recorded with
const (
	ResultPass  = "pass"
	ResultFail  = "fail"
	ResultError = "error"
)

var (
	Debug                bool = true
	nonAlphanumericRegex      = regexp.MustCompile(`[^a-zA-Z ]+`)

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "errors_total",
		Help:      "Count of errors",
	}, []string{
		"error",
	})

	summariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "summaries_total",
		Help:      "Count of raw logs summarised",
	}, []string{
		"result",
	})

	runStats = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "run_stats",
		Help:      "Run statistics of the most recently summarised log",
	}, []string{
		"run",
		"stat",
	})

	elementsWritten = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "elements_written",
		Help:      "Records written to the elements log of the most recently summarised log",
	}, []string{
		"run",
	})

	summaryDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "summary_duration_seconds",
		Help:      "Time taken to summarise a raw log",
	}, []string{
		"run",
	})
)

// errToLabel tries to make the error string a more valid Prometheus label
func errToLabel(err error) string {
	if err == nil {
		return "nil"
	}
	errClean := nonAlphanumericRegex.ReplaceAllString(err.Error(), "")
	errClean = strings.ReplaceAll(errClean, " ", "_")
	errClean = strings.ReplaceAll(errClean, "__", "_")
	return errClean
}

func RecordError(error string) {
	if Debug {
		log.Debug("metric inc",
			"m", "errors_total",
			"error", error,
		)
	}
	errorsTotal.WithLabelValues(error).Inc()
}

// RecordErrorDetails concats the error message to the label
// and also tries to clean the label to be a valid Prometheus label
func RecordErrorDetails(label string, err error) {
	if err == nil {
		return
	}
	label = fmt.Sprintf("%s.%s", label, errToLabel(err))
	RecordError(label)
}

// RecordSummary records the outcome of summarising one raw log
func RecordSummary(result string) {
	if Debug {
		log.Debug("metric inc",
			"m", "summaries_total",
			"result", result,
		)
	}
	summariesTotal.WithLabelValues(result).Inc()
}

// RecordRunStats publishes every counter of a run's stats under the run name
func RecordRunStats(run string, stats types.RunStats, elements int, seconds float64) {
	for _, c := range stats.Counters() {
		runStats.WithLabelValues(run, c.Name).Set(float64(c.Value))
	}
	elementsWritten.WithLabelValues(run).Set(float64(elements))
	summaryDuration.WithLabelValues(run).Set(seconds)
}
