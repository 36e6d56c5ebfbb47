package report

import (
	"errors"
	"fmt"

	"github.com/san-kum/reactorsim/internal/reactor"
)

var ErrUnknownSeries = errors.New("report: unknown series")

// Series selects one column of the history.
type Series int

const (
	Power Series = iota
	Temperature
	Reactivity
)

func (s Series) String() string {
	switch s {
	case Power:
		return "power"
	case Temperature:
		return "temp"
	case Reactivity:
		return "reactivity"
	}
	return "unknown"
}

// Unit is the display unit of the series.
func (s Series) Unit() string {
	switch s {
	case Power:
		return "MW"
	case Temperature:
		return "°C"
	case Reactivity:
		return "pcm"
	}
	return ""
}

func ParseSeries(name string) (Series, error) {
	switch name {
	case "power", "power_mw":
		return Power, nil
	case "temp", "temperature":
		return Temperature, nil
	case "reactivity", "rho":
		return Reactivity, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
}

// Values extracts a series in display units. Reactivity is reported in pcm.
func Values(history []reactor.Sample, s Series) []float64 {
	out := make([]float64, len(history))
	for i, h := range history {
		switch s {
		case Power:
			out[i] = h.PowerMW
		case Temperature:
			out[i] = h.Temp
		case Reactivity:
			out[i] = PCM(h.Reactivity)
		}
	}
	return out
}
