package reactor

import (
	"math"

	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/safety"
)

const (
	// HistoryCapacity bounds the one-second history.
	HistoryCapacity = 100
	// ScramInsertionRate is the rod insertion speed during a scram, in percent per second.
	ScramInsertionRate = 10.0
)

// Unit is one simulated reactor with its controls and published state.
type Unit struct {
	id   string
	name string

	physics *physics.Reactivity
	thermal *physics.Thermal
	safety  *safety.Layer

	controls  Controls
	telemetry Telemetry
	history   *ring[Sample]
	events    *eventLog
	upsets    disturbances
	time      float64
}

// New returns a unit at the cold, just-critical initial condition.
func New(id, name string) *Unit {
	return &Unit{
		id:        id,
		name:      name,
		physics:   physics.NewReactivity(),
		thermal:   physics.NewThermal(),
		safety:    safety.New(),
		controls:  DefaultControls(),
		telemetry: initialTelemetry(),
		history:   newRing[Sample](HistoryCapacity),
		events:    newEventLog(),
		upsets:    newDisturbances(),
	}
}

func (u *Unit) ID() string   { return u.id }
func (u *Unit) Name() string { return u.name }

// Time is the accumulated simulated time in seconds.
func (u *Unit) Time() float64 { return u.time }

func (u *Unit) Telemetry() Telemetry { return u.telemetry.clone() }

func (u *Unit) Controls() Controls { return u.controls }

// History returns the one-second samples oldest-first.
func (u *Unit) History() []Sample { return u.history.items() }

// Events returns the event log oldest-first.
func (u *Unit) Events() []Event { return u.events.entries.items() }

// SafetyState reports the latched state of the protection system.
func (u *Unit) SafetyState() safety.State { return u.safety.State() }

// InterlocksActive reports whether the automatic trips were armed on the last
// step. A change to Controls.SafetyEnabled takes effect on the next Tick.
func (u *Unit) InterlocksActive() bool { return u.safety.InterlocksActive() }

// Xenon is the current poison level.
func (u *Unit) Xenon() float64 { return u.physics.Xenon }

// SetControls replaces the operator inputs. Invalid values are rejected and
// leave the current controls untouched.
func (u *Unit) SetControls(c Controls) error {
	if err := c.Validate(); err != nil {
		return err
	}
	u.controls = c
	return nil
}

// UpdateControls applies fn to a copy of the controls and commits the result
// if it validates.
func (u *Unit) UpdateControls(fn func(*Controls)) error {
	c := u.controls
	fn(&c)
	return u.SetControls(c)
}

// RequestScram asks for a manual scram on the next step.
func (u *Unit) RequestScram() { u.controls.ManualScram = true }

func (u *Unit) SetSafetyEnabled(enabled bool) { u.controls.SafetyEnabled = enabled }

// InjectDisturbance applies an external upset from the next step on.
func (u *Unit) InjectDisturbance(d Disturbance) { u.upsets.apply(d) }

// CoolingFaulted reports whether a cooling fault is active.
func (u *Unit) CoolingFaulted() bool { return u.upsets.coolingPenalty < 1.0 }

// Tick advances the unit by dt simulated seconds. Negative or non-finite dt
// is ignored.
func (u *Unit) Tick(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	u.time += dt
	u.controls = u.controls.Clamped()
	c := &u.controls
	prev := u.telemetry

	u.safety.SetInterlocks(c.SafetyEnabled)
	flow := c.PumpSpeed * u.upsets.coolingPenalty
	scrammed := u.safety.Check(prev.Flux, prev.Temp, flow, c.ManualScram)

	if scrammed {
		c.RodsPos = math.Min(100.0, c.RodsPos+ScramInsertionRate*dt)
		c.ManualScram = false
	}

	u.physics.External = u.upsets.spike
	flux := u.physics.Update(c.RodsPos, prev.Temp, dt)
	temp := u.thermal.Update(flux, flow, c.CoolingEff, dt)
	u.upsets.decay(dt)

	u.telemetry = Telemetry{
		Flux:       flux,
		PowerMW:    physics.PowerMW(flux),
		Temp:       temp,
		Reactivity: u.physics.Reactivity,
		Period:     u.physics.Period,
		Trips:      u.safety.Trips(),
		Scram:      scrammed,
		Status:     u.thermal.Status,
		Xenon:      u.physics.Xenon,
	}

	if math.Mod(u.time, 1) < dt {
		u.history.push(Sample{
			Time:       math.Floor(u.time),
			PowerMW:    u.telemetry.PowerMW,
			Temp:       u.telemetry.Temp,
			Reactivity: u.telemetry.Reactivity,
		})
	}

	u.events.observe(u.time, prev, u.telemetry)
}

// Snapshot is the full read surface of a unit at one instant.
type Snapshot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Time      float64   `json:"time"`
	Telemetry Telemetry `json:"telemetry"`
	Controls  Controls  `json:"controls"`
	History   []Sample  `json:"history"`
	Events    []Event   `json:"events"`
}

func (u *Unit) Snapshot() Snapshot {
	return Snapshot{
		ID:        u.id,
		Name:      u.name,
		Time:      u.time,
		Telemetry: u.Telemetry(),
		Controls:  u.controls,
		History:   u.History(),
		Events:    u.Events(),
	}
}
