package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
)

var ErrTooShort = errors.New("analysis: need at least 4 evenly spaced samples")

// FFT is a radix-2 transform. len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result
}

// PowerSpectrum returns the magnitudes of the first half of the transform.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}
	return ps
}

// Spectrum is the one-sided magnitude spectrum of a sampled trace.
type Spectrum struct {
	// Resolution is the spacing of bins in Hz.
	Resolution float64
	Magnitude  []float64
}

// NewSpectrum removes the mean from values, zero-pads them to a power of
// two and transforms them. dt is the sample spacing in seconds.
func NewSpectrum(values []float64, dt float64) (*Spectrum, error) {
	if len(values) < 4 || dt <= 0 {
		return nil, ErrTooShort
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	n := 1
	for n < len(values) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range values {
		padded[i] = v - mean
	}

	return &Spectrum{
		Resolution: 1 / (float64(n) * dt),
		Magnitude:  PowerSpectrum(padded),
	}, nil
}

// Dominant returns the frequency of the strongest non-DC bin and its
// magnitude. A flat trace reports zero for both.
func (s *Spectrum) Dominant() (freq, magnitude float64) {
	idx := 0
	for i := 1; i < len(s.Magnitude); i++ {
		if s.Magnitude[i] > magnitude {
			magnitude = s.Magnitude[i]
			idx = i
		}
	}
	return float64(idx) * s.Resolution, magnitude
}

// Oscillation summarizes the dominant periodic component of a trace.
type Oscillation struct {
	FrequencyHz float64 `json:"frequency_hz"`
	PeriodS     float64 `json:"period_s"`
	// Amplitude is the peak-to-mean swing the dominant bin accounts for.
	Amplitude float64 `json:"amplitude"`
}

// DominantOscillation finds the strongest oscillation in values sampled every dt.
func DominantOscillation(values []float64, dt float64) (Oscillation, error) {
	s, err := NewSpectrum(values, dt)
	if err != nil {
		return Oscillation{}, err
	}
	f, mag := s.Dominant()
	o := Oscillation{FrequencyHz: f, Amplitude: 2 * mag / float64(len(values))}
	if f > 0 {
		o.PeriodS = 1 / f
	}
	return o, nil
}

// Trace extracts a series from history with its mean sample spacing.
func Trace(history []reactor.Sample, s report.Series) ([]float64, float64) {
	if len(history) < 2 {
		return report.Values(history, s), 0
	}
	span := history[len(history)-1].Time - history[0].Time
	return report.Values(history, s), span / float64(len(history)-1)
}
