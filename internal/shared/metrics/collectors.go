package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors agrupa as métricas do serviço
type Collectors struct {
	HTTPRequests  *prometheus.CounterVec // route, status
	Notifications *prometheus.CounterVec // kind, outcome
	CacheLookups  *prometheus.CounterVec // resource, result
}

func NewCollectors() *Collectors {
	return &Collectors{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betai_http_requests_total",
			Help: "requisições HTTP por rota e status",
		}, []string{"route", "status"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betai_notifications_sent_total",
			Help: "envios do bot por tipo e resultado",
		}, []string{"kind", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "betai_cache_lookups_total",
			Help: "consultas ao cache de respostas",
		}, []string{"resource", "result"}),
	}
}

// MustRegister registra todos os collectors no registry informado
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.HTTPRequests, c.Notifications, c.CacheLookups)
}
