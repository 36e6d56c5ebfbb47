package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/reactorsim/internal/reactor"
)

var csvHeader = []string{"time", "power_mw", "temp_c", "reactivity"}

// WriteCSV writes the history with a header row, oldest sample first.
func WriteCSV(w io.Writer, history []reactor.Sample) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, s := range history {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 0, 64),
			strconv.FormatFloat(s.PowerMW, 'f', 6, 64),
			strconv.FormatFloat(s.Temp, 'f', 6, 64),
			strconv.FormatFloat(s.Reactivity, 'g', 10, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a history written by WriteCSV.
func ReadCSV(r io.Reader) ([]reactor.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []reactor.Sample{}, nil
	}

	history := make([]reactor.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		history = append(history, reactor.Sample{
			Time:       vals[0],
			PowerMW:    vals[1],
			Temp:       vals[2],
			Reactivity: vals[3],
		})
	}
	return history, nil
}
