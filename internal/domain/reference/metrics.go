package reference

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadform_reference_fetch_total",
		Help: "Reference list loads by entity and result.",
	}, []string{"entity", "result"})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leadform_reference_cache_hits_total",
		Help: "Reference list loads served from cache.",
	}, []string{"entity"})
)
