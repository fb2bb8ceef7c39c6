// Package metric provides Prometheus metrics for tlsedge.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/tlsedge-go/internal/infra/buildinfo"
)

// newBuildInfoCollector exposes tlsedge_build_info with the build metadata
// as labels and a constant value of 1.
func newBuildInfoCollector() prometheus.Collector {
	info := buildinfo.Get()
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Build information of the running binary.",
		ConstLabels: prometheus.Labels{
			"version":    info.Version,
			"commit":     info.Commit,
			"go_version": info.GoVersion,
		},
	}, func() float64 { return 1 })
}
