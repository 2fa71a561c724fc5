package form

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var openForms = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "leadform_open_forms",
	Help: "Form sessions currently open.",
})
