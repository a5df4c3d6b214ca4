package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "terpfit",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Workouts persisted to the store.",
	})
	workoutsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "terpfit",
		Subsystem: "workouts",
		Name:      "deleted_total",
		Help:      "Workouts removed from the store.",
	})
	workoutsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "terpfit",
		Subsystem: "workouts",
		Name:      "evicted_total",
		Help:      "Workouts dropped to keep the history under its configured bound.",
	})
	assistantRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "terpfit",
		Subsystem: "assistant",
		Name:      "requests_total",
		Help:      "Assistant backend calls by model and outcome.",
	}, []string{"model", "outcome"})
	assistantLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "terpfit",
		Subsystem: "assistant",
		Name:      "request_duration_seconds",
		Help:      "Latency of assistant backend calls.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
	}, []string{"model"})
	chatSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "terpfit",
		Subsystem: "chat",
		Name:      "sessions_active",
		Help:      "Chat sessions currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(workoutsLogged, workoutsDeleted, workoutsEvicted, assistantRequests, assistantLatency, chatSessions)
}

func RecordWorkoutLogged()  { workoutsLogged.Inc() }
func RecordWorkoutDeleted() { workoutsDeleted.Inc() }
func RecordWorkoutEvicted() { workoutsEvicted.Inc() }

// RecordAssistantCall tracks one backend attempt.
func RecordAssistantCall(model string, took time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	assistantRequests.WithLabelValues(model, outcome).Inc()
	assistantLatency.WithLabelValues(model).Observe(took.Seconds())
}

func SetChatSessions(n int) { chatSessions.Set(float64(n)) }
