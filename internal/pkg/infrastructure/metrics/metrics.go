package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace string = "medication_reminder"

var (
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Medication store mutations by operation and result.",
	}, []string{"operation", "result"})

	AlarmRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alarm_registrations_total",
		Help:      "Alarm registrations with the notification scheduler by result.",
	}, []string{"result"})

	RemindersDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_delivered_total",
		Help:      "Fired reminders handed to a delivery sink by sink and result.",
	}, []string{"sink", "result"})
)

func Result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
