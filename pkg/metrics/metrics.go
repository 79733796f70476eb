package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TemplateSeeds = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "crudapi", Name: "template_seeds_total", Help: "Number of template sets seeded from the default collection."},
	)
	TemplateAppends = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "crudapi", Name: "template_appends_total", Help: "Number of templates appended to per-user sets."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crudapi", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crudapi", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(TemplateSeeds)
	reg.MustRegister(TemplateAppends)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
