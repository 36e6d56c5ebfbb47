// Package physics provides the coupled core models stepped by a reactor unit.
//
// Each layer owns its state and advances it with an explicit Euler step:
//
//   - [Reactivity]: rod worth, Doppler feedback, xenon poisoning and neutron flux
//   - [Thermal]: lumped core heat balance and the advisory [Status]
//
// Layers hold no references to each other. The caller feeds the output of one
// layer into the next, which keeps every layer testable on its own:
//
//	r := physics.NewReactivity()
//	th := physics.NewThermal()
//	flux := r.Update(rods, th.CoreTemp, dt)
//	temp := th.Update(flux, pump, cooling, dt)
//
// The models are first-order approximations tuned for a 0.1 s step; they are
// not point kinetics and carry no delayed-neutron groups.
package physics
