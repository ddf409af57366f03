package metrics

import (
	"github.com/san-kum/gdesim/internal/analysis"
	"github.com/san-kum/gdesim/internal/field"
)

// Peak reports the maximum concentration of the latest observation.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(g *field.Grid, x field.Profile, t float64) {
	p.peak = x.Max()
}

func (p *Peak) Value() float64 { return p.peak }
func (p *Peak) Reset()         { p.peak = 0 }

// Spread reports the RMS width of the latest observation.
type Spread struct {
	name  string
	width float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(g *field.Grid, x field.Profile, t float64) {
	s.width = analysis.ComputeMoments(g, x).Width
}

func (s *Spread) Value() float64 { return s.width }
func (s *Spread) Reset()         { s.width = 0 }
