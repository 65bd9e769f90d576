package business_flow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	linksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shortener_links_created_total",
			Help: "Short links created, by segment kind",
		},
		[]string{"kind"},
	)

	clicksRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_clicks_recorded_total",
			Help: "Clicks recorded on short link visits",
		},
	)
)
