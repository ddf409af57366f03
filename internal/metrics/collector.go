package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/gdesim/internal/field"
)

// Collector exports run progress as Prometheus metrics. It is registered on
// a private registry so concurrent runs never collide on the default one.
type Collector struct {
	registry *prometheus.Registry
	dz       float64

	Steps          prometheus.Counter
	SimulatedTime  prometheus.Gauge
	MaxCoefficient prometheus.Gauge
	Dose           prometheus.Gauge
}

// NewCollector labels every series with the coefficient mode.
func NewCollector(g *field.Grid, mode string) *Collector {
	labels := prometheus.Labels{"mode": mode}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		dz:       g.Dz(),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "gdesim",
			Name:        "steps_total",
			Help:        "Diffusion steps applied.",
			ConstLabels: labels,
		}),
		SimulatedTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "gdesim",
			Name:        "simulated_time_seconds",
			Help:        "Clock value of the latest step.",
			ConstLabels: labels,
		}),
		MaxCoefficient: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "gdesim",
			Name:        "max_coefficient_square_meters_per_second",
			Help:        "Largest diffusion coefficient used by the latest step.",
			ConstLabels: labels,
		}),
		Dose: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "gdesim",
			Name:        "dose",
			Help:        "Integrated concentration after the latest step.",
			ConstLabels: labels,
		}),
	}
	c.registry.MustRegister(c.Steps, c.SimulatedTime, c.MaxCoefficient, c.Dose)
	return c
}

// OnStep satisfies sim.Observer.
func (c *Collector) OnStep(step int, t float64, x, d field.Profile) {
	c.Steps.Inc()
	c.SimulatedTime.Set(t)
	c.MaxCoefficient.Set(d.Max())
	c.Dose.Set(x.Sum() * c.dz)
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteToTextfile writes the current values in the node-exporter textfile
// format.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
