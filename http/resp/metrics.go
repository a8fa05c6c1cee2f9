package resp

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	responsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courier_responses_total",
			Help: "Total number of finalized responses by outcome and status",
		},
		[]string{"outcome", "status"},
	)

	partialBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courier_partial_content_bytes_total",
			Help: "Total number of bytes sent in 206 Partial Content responses",
		},
	)
)

func observe(o Outcome, status int) {
	responsesTotal.WithLabelValues(o.String(), strconv.Itoa(status)).Inc()
}
