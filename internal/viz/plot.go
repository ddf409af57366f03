package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotProfiles overlays profiles on one chart. The first is drawn green,
// the second cyan, any others in the terminal's default colour.
func PlotProfiles(caption string, width, height int, profiles ...[]float64) string {
	data := make([][]float64, 0, len(profiles))
	for _, p := range profiles {
		if len(p) > 0 {
			data = append(data, p)
		}
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Cyan),
	)
}
