// Package util provides small helpers shared by harborlift commands.
//
// Key components:
//   - SliceSubtract: Elements of one slice missing from another.
//   - SortedKeys: Deterministic key order for maps.
//   - FormatDuration: Human-readable durations for logs and schedules.
package util
