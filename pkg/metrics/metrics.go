package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "processed_reports_total",
		Help: "Total processed reports.",
	})

	ProcessingTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "processing_time_seconds",
		Help: "Time spent processing, by stage.",
	}, []string{"stage"})

	FacesRedacted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "faces_redacted_total",
		Help: "Total faces redacted.",
	})

	PIIRedacted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pii_entities_redacted_total",
		Help: "Total PII entities redacted.",
	})

	IntakeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intake_errors_total",
		Help: "Intake loop errors followed by backoff.",
	})
)
