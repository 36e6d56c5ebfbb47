// Package analysis looks at recorded runs after the fact.
//
//   - [DominantOscillation]: strongest periodic swing in a trace, such as
//     power hunting under automatic rod control
//   - [PhasePortrait]: one series against another, e.g. temperature
//     against power through a transient
package analysis
