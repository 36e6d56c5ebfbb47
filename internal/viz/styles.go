package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reactorsim/internal/safety"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

// badge renders a filled status label.
func badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#000000")).
		Background(color).
		Padding(0, 1).
		Render(text)
}

// alarm renders an annunciator tile; lit tiles blink.
func alarm(text string, lit bool) string {
	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	if lit {
		return style.
			Bold(true).
			Blink(true).
			Foreground(CurrentTheme.Meltdown).
			BorderForeground(CurrentTheme.Meltdown).
			Render(text)
	}
	return style.Foreground(CurrentTheme.Muted).BorderForeground(CurrentTheme.Muted).Render(text)
}

// Gauge renders a 0..100 percent bar. Green means low, red high.
func Gauge(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 80 {
		return SparkHigh.Render(bar)
	} else if percent > 40 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// FluxSparkline plots the newest width flux readings on a fixed scale from
// zero to the high-flux setpoint, so the bar height means the same thing on
// every frame. Readings above nominal turn amber, above the setpoint red.
func FluxSparkline(flux []float64, width int) string {
	if len(flux) == 0 {
		return strings.Repeat("─", width)
	}
	if len(flux) > width {
		flux = flux[len(flux)-width:]
	}

	top := len(sparkBars) - 1
	var b strings.Builder
	for _, f := range flux {
		idx := int(f / safety.MaxFlux * float64(top))
		idx = max(0, min(top, idx))

		style := SparkLow
		switch {
		case f > safety.MaxFlux:
			style = SparkHigh
		case f > 1.0:
			style = SparkMid
		}
		b.WriteString(style.Render(string(sparkBars[idx])))
	}
	return b.String()
}

var sparkBars = []rune("▁▂▃▄▅▆▇█")
