// Package mapper rebuilds raw submissions into per-field answer sets.
//
// Map creates one responses.Accumulator per field definition, routes every
// raw fragment to the accumulator whose field id it contains and projects the
// accumulators in form order. Fragments that match no field, and fragments
// whose proposal index cannot be honoured, become warnings; mapping itself
// never fails. MapAll applies Map to many submissions concurrently.
package mapper
