package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Exporter owns a registry holding every Aurora collector. The commands are
// one-shot, so metrics are written to a node exporter textfile instead of
// being served.
type Exporter struct {
	registry *prometheus.Registry
}

// NewExporter creates an exporter with the Aurora collectors and the Go
// runtime collector registered.
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	for _, collector := range allMetrics {
		reg.MustRegister(collector)
	}
	reg.MustRegister(collectors.NewGoCollector())
	return &Exporter{registry: reg}
}

// WriteTextfile writes the registry in the text exposition format to path.
// The file is replaced atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", path, err)
	}
	return nil
}
