package report

import (
	"encoding/json"
	"io"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/safety"
	"github.com/san-kum/reactorsim/internal/sim"
)

// Summary is the archived form of a finished run.
type Summary struct {
	UnitID     string             `json:"unit_id"`
	UnitName   string             `json:"unit_name"`
	Preset     string             `json:"preset,omitempty"`
	Controller string             `json:"controller"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Time       float64            `json:"time"`
	FirstTrip  float64            `json:"first_trip"`
	Trips      []safety.Trip      `json:"trips"`
	Telemetry  reactor.Telemetry  `json:"telemetry"`
	Controls   reactor.Controls   `json:"controls"`
	Metrics    map[string]float64 `json:"metrics"`
	History    []reactor.Sample   `json:"history"`
	Events     []reactor.Event    `json:"events"`
}

func NewSummary(preset, controller string, cfg sim.Config, res *sim.Result) Summary {
	trips := res.Trips
	if trips == nil {
		trips = []safety.Trip{}
	}
	return Summary{
		UnitID:     res.Final.ID,
		UnitName:   res.Final.Name,
		Preset:     preset,
		Controller: controller,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Steps:      res.Steps,
		Time:       res.Time,
		FirstTrip:  res.FirstTrip,
		Trips:      trips,
		Telemetry:  res.Final.Telemetry,
		Controls:   res.Final.Controls,
		Metrics:    res.Metrics,
		History:    res.Final.History,
		Events:     res.Final.Events,
	}
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ReadSummary(r io.Reader) (*Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
