// Package reactor drives a single simulated reactor unit.
//
// A [Unit] owns one reactivity layer, one thermal layer and one safety layer,
// the operator controls, the latest [Telemetry] snapshot, a bounded history of
// one-second [Sample] values and a debounced [Event] log. [Unit.Tick] advances
// the unit by one fixed step:
//
//	controls -> safety check (previous telemetry) -> scram rod ramp
//	         -> reactivity -> thermal -> telemetry -> history -> events
//
// The safety check deliberately reads the telemetry produced by the previous
// step, so a limit crossed during step N trips the unit during step N+1.
//
// # Thread Safety
//
// Unit is NOT thread-safe. Tick and the control setters must be serialized by
// the caller; the scheduler in package sim does this. Accessors return copies.
package reactor
