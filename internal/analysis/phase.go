package analysis

import (
	"strings"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
)

type Point struct{ X, Y float64 }

// PhasePortrait is the trajectory of a run in the plane of two series.
type PhasePortrait struct {
	X, Y   report.Series
	Points []Point
}

func NewPhasePortrait(history []reactor.Sample, x, y report.Series) *PhasePortrait {
	xs := report.Values(history, x)
	ys := report.Values(history, y)
	p := &PhasePortrait{X: x, Y: y, Points: make([]Point, len(xs))}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p
}

// ASCII plots the portrait on a width by height grid. The first point is
// marked 'o' and the last '@'.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (int, int) {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		return row, col
	}
	for _, pt := range p.Points {
		row, col := cell(pt)
		grid[row][col] = '•'
	}
	row, col := cell(p.Points[0])
	grid[row][col] = 'o'
	row, col = cell(p.Points[len(p.Points)-1])
	grid[row][col] = '@'

	var sb strings.Builder
	for _, r := range grid {
		sb.WriteString(strings.TrimRight(string(r), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}
