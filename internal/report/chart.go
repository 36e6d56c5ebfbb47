package report

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// Chart plots one history series for the terminal. An empty history yields "".
func Chart(history []reactor.Sample, s Series, width, height int) string {
	data := Values(history, s)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s (%s)", s, s.Unit())),
	)
}
