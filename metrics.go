package pagesmith

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	generations    *prometheus.CounterVec
	shares         prometheus.Counter
	exports        *prometheus.CounterVec
	decodeFailures prometheus.Counter
	contacts       prometheus.Counter
	workspaces     prometheus.GaugeFunc
}

func newMetrics(reg prometheus.Registerer, live func() float64) *metrics {
	f := promauto.With(reg)
	return &metrics{
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pagesmith_generations_total",
			Help: "Content generations by kind and result",
		}, []string{"kind", "result"}),
		shares: f.NewCounter(prometheus.CounterOpts{
			Name: "pagesmith_share_links_total",
			Help: "Share links issued",
		}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pagesmith_exports_total",
			Help: "HTML exports by origin (editor or shared)",
		}, []string{"origin"}),
		decodeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "pagesmith_share_decode_failures_total",
			Help: "Shared links that could not be opened",
		}),
		contacts: f.NewCounter(prometheus.CounterOpts{
			Name: "pagesmith_contact_submissions_total",
			Help: "Accepted contact form submissions",
		}),
		workspaces: f.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pagesmith_live_workspaces",
			Help: "Session stores currently held in memory",
		}, live),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
