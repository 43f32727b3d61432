package apierror

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const categoryFieldValidation = "field_validation"

type metrics struct {
	classified *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		classified: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "apierror",
				Name:      "classified_total",
				Help:      "Total number of errors converted into error responses",
			},
			[]string{"category", "status"},
		),
	}
}

// no-op when metrics are disabled
func (m *metrics) observe(category string, status int) {
	if m == nil {
		return
	}

	m.classified.WithLabelValues(category, strconv.Itoa(status)).Inc()
}
