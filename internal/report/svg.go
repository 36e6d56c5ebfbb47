package report

import (
	"fmt"
	"strings"

	"github.com/san-kum/reactorsim/internal/reactor"
)

var seriesColors = map[Series]string{
	Power:       "#00ff00",
	Temperature: "#ff8800",
	Reactivity:  "#00aaff",
}

// HistorySVG draws one or more history series as polylines. Each series is
// scaled to its own range so power and temperature share the frame.
func HistorySVG(history []reactor.Sample, width, height int, series ...Series) string {
	if len(history) < 2 {
		return ""
	}
	if len(series) == 0 {
		series = []Series{Power, Temperature}
	}

	minT, maxT := history[0].Time, history[len(history)-1].Time
	rangeT := maxT - minT
	if rangeT == 0 {
		rangeT = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range series {
		ys := Values(history, s)
		minY, maxY := bounds(ys)

		// Add padding
		rangeY := maxY - minY
		if rangeY == 0 {
			rangeY = 1
		}
		minY -= rangeY * 0.1
		rangeY *= 1.2

		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, s, seriesColors[s]))
		for i, h := range history {
			x := (h.Time - minT) / rangeT * float64(width)
			y := float64(height) - (ys[i]-minY)/rangeY*float64(height)

			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func bounds(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
