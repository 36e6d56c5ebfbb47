// Package viz is the terminal control room.
//
// [App] lists the presets; selecting one opens a [Model], which steps a
// single reactor unit once per frame and renders the core, readouts,
// annunciators, advisories and a power trend. Operator keys write controls
// between steps, so every change is seen by the next tick.
//
// # Key Bindings
//
//	Up/Down   - Withdraw/insert rods (PgUp/PgDn for 5%)
//	Left/Right - Pump speed
//	[ ]       - Cooling efficiency
//	S         - Manual scram
//	I         - Toggle interlocks
//	A         - Toggle automatic rod control
//	+ -       - Automatic power target
//	D         - Flux spike
//	C         - Cooling fault on/off
//	T         - Cycle themes
//	Space     - Pause/Resume
//	?         - Help overlay
package viz
