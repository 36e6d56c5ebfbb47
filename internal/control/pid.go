package control

import (
	"github.com/san-kum/reactorsim/internal/physics"
	"github.com/san-kum/reactorsim/internal/reactor"
)

const (
	DefaultKp = 20.0
	DefaultKi = 2.0
	DefaultKd = 0.0

	// DefaultMaxRate is the rod drive speed in percent per second.
	DefaultMaxRate = 5.0
	// DefaultRampRate is how fast the setpoint follows a new target, in MW per second.
	DefaultRampRate = 10.0

	// neutralRods is the rod position with zero rod reactivity.
	neutralRods = 50.0
)

// PID moves the rods to hold thermal power at TargetMW. The setpoint starts
// at the power seen on the first call and ramps toward TargetMW at RampRate.
// The error is normalized by rated power and the output is a rod offset from
// the neutral position, limited by the rod drive speed.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	TargetMW float64
	MaxRate  float64
	RampRate float64

	setpoint float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, targetMW float64) *PID {
	return &PID{
		Kp:       kp,
		Ki:       ki,
		Kd:       kd,
		TargetMW: targetMW,
		MaxRate:  DefaultMaxRate,
		RampRate: DefaultRampRate,
		first:    true,
	}
}

// Adjust implements sim.Controller.
func (p *PID) Adjust(t float64, tel reactor.Telemetry, c *reactor.Controls) {
	if p.first {
		p.setpoint = tel.PowerMW
		p.prevErr = 0
		p.prevT = t
		p.first = false
		return
	}

	dt := t - p.prevT
	if dt <= 0 {
		return
	}

	if p.RampRate > 0 {
		step := p.RampRate * dt
		p.setpoint = physics.Clamp(p.TargetMW, p.setpoint-step, p.setpoint+step)
	} else {
		p.setpoint = p.TargetMW
	}
	err := (p.setpoint - tel.PowerMW) / physics.RatedPowerMW

	derivative := (err - p.prevErr) / dt
	integral := p.integral + err*dt
	u := p.Kp*err + p.Ki*integral + p.Kd*derivative

	want := neutralRods - u
	if want >= 0 && want <= 100 {
		p.integral = integral
	}
	want = physics.Clamp(want, 0, 100)

	if p.MaxRate > 0 {
		limit := p.MaxRate * dt
		want = physics.Clamp(want, c.RodsPos-limit, c.RodsPos+limit)
	}
	c.RodsPos = physics.Clamp(want, 0, 100)

	p.prevErr = err
	p.prevT = t
}

// Reset clears integral and derivative state
func (p *PID) Reset() {
	p.setpoint = 0
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// GetParams returns tunable parameters for live adjustment
func (p *PID) GetParams() map[string]float64 {
	return map[string]float64{
		"Kp":       p.Kp,
		"Ki":       p.Ki,
		"Kd":       p.Kd,
		"TargetMW": p.TargetMW,
		"MaxRate":  p.MaxRate,
		"RampRate": p.RampRate,
	}
}

// SetParam adjusts a PID parameter
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "Kp":
		p.Kp = value
	case "Ki":
		p.Ki = value
	case "Kd":
		p.Kd = value
	case "TargetMW":
		p.TargetMW = value
	case "MaxRate":
		p.MaxRate = value
	case "RampRate":
		p.RampRate = value
	}
}

// Setpoint is the power the controller is currently steering toward.
func (p *PID) Setpoint() float64 {
	return p.setpoint
}
