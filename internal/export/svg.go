// Package export renders simulation results as standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/heatsim/internal/solver"
)

// ProfileToSVG draws one temperature profile as a polyline over the rod.
func ProfileToSVG(xs []float64, f solver.Field, width, height int, strokeColor string) string {
	if len(xs) < 2 || len(f) != len(xs) {
		return ""
	}

	minY, maxY := f[0], f[0]
	for _, v := range f {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	minX, maxX := xs[0], xs[len(xs)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * float64(width)
		y := float64(height) - (f[i]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// HeatmapToSVG draws the full trajectory as a space-by-time cell grid,
// rows running from the initial snapshot at the top to the final one.
func HeatmapToSVG(res *solver.Result, width, height int) string {
	if res == nil || len(res.Fields) == 0 {
		return ""
	}

	minV, maxV := res.Fields[0][0], res.Fields[0][0]
	for _, f := range res.Fields {
		for _, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}

	rows := len(res.Fields)
	cols := len(res.Fields[0])
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for row, f := range res.Fields {
		for col, v := range f {
			sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>
`,
				float64(col)*cellW, float64(row)*cellH, cellW, cellH,
				heatColor((v-minV)/rangeV)))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// heatColor maps a normalized temperature in [0, 1] onto a cold-to-hot
// blue/red ramp.
func heatColor(v float64) string {
	if math.IsNaN(v) {
		return "#444444"
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	r := int(255 * v)
	b := int(255 * (1 - v))
	g := int(96 * (1 - math.Abs(2*v-1)))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
