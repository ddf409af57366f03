package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfilesToSVG(t *testing.T) {
	z := []float64{0, 1, 2}
	svg := ProfilesToSVG(z, []Series{
		{Label: "initial", Color: "#00ff88", Values: []float64{0, 10, 0}},
		{Label: "final <t>", Color: "#00ccff", Values: []float64{3, 4, 3}},
		{Label: "bad", Color: "#ff0000", Values: []float64{1}},
	}, 200, 100)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 2, strings.Count(svg, "<path"))
	assert.Contains(t, svg, "final &lt;t&gt;")
	assert.NotContains(t, svg, ">bad<")
	// y range is padded to [-1, 11]
	assert.Contains(t, svg, `d="M0.0,91.7`)
}

func TestProfilesToSVGEmpty(t *testing.T) {
	assert.Empty(t, ProfilesToSVG([]float64{0}, nil, 10, 10))
	assert.Empty(t, ProfilesToSVG([]float64{0, 1}, []Series{{Values: []float64{1}}}, 10, 10))
}
