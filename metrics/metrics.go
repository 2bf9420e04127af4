package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

const Namespace = "testledger"

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func registererProvider(registry *prometheus.Registry) prometheus.Registerer {
	return registry
}

func gathererProvider(registry *prometheus.Registry) prometheus.Gatherer {
	return registry
}

var Module = fx.Provide(
	NewRegistry,
	registererProvider,
	gathererProvider,
)
