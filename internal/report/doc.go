// Package report renders unit telemetry and run results for people and
// files: trip annunciator text, the one-second history as CSV, JSON, SVG or
// a terminal chart, and a plain-text incident report.
package report
