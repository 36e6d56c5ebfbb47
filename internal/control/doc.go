// Package control provides automatic operators for a reactor unit.
//
// Controllers implement [sim.Controller] and adjust the operator inputs
// before each step:
//
//   - [PID]: holds thermal power at a target by moving the control rods
//   - [Manual]: leaves the inputs to the human operator
//
// # Usage
//
//	pid := control.NewPID(20, 2, 0, 1000) // Kp, Ki, Kd, target MW
//	r := sim.New(pid)
//
// The runner stops consulting the controller once the unit has scrammed.
package control
