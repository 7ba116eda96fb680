package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jvfernandez09/jfc-app/internal/infra/config"
)

// Provider holds process-level telemetry handles. HTTP request metrics are
// registered separately by the metrics middleware.
type Provider struct {
	buildInfo prometheus.Gauge
}

// Attach registers process-level collectors and returns a provider handle.
func Attach(cfg *config.AppConfig) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	buildInfo := promauto.NewGauge(prometheus.GaugeOpts{
		Namespace:   "crm",
		Name:        "build_info",
		Help:        "Constant gauge labelled with build metadata.",
		ConstLabels: prometheus.Labels{"app": cfg.App.Name, "env": cfg.App.Env},
	})
	buildInfo.Set(1)

	return &Provider{buildInfo: buildInfo}, nil
}
