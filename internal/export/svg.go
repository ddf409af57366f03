package export

import (
	"fmt"
	"strings"
)

// Series is one curve of a profile plot.
type Series struct {
	Label  string
	Color  string
	Values []float64
}

// ProfilesToSVG draws every series against the shared positions z. Series
// whose length differs from z are skipped. It returns "" when there is
// nothing to draw.
func ProfilesToSVG(z []float64, series []Series, width, height int) string {
	if len(z) < 2 {
		return ""
	}

	drawn := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == len(z) {
			drawn = append(drawn, s)
		}
	}
	if len(drawn) == 0 {
		return ""
	}

	minX, maxX := z[0], z[len(z)-1]
	minY, maxY := drawn[0].Values[0], drawn[0].Values[0]
	for _, s := range drawn {
		for _, v := range s.Values {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range drawn {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Color))
		for i, v := range s.Values {
			x := (z[i] - minX) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for i, s := range drawn {
		if s.Label == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*i, s.Color, escape(s.Label)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return xmlEscaper.Replace(s) }
