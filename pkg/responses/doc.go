// Package responses holds the per-submission answer accumulators. An
// Accumulator is created for one field of one submission, receives the raw
// fragments matched to that field through Insert, and is finally projected
// into a read-only model.Answer. Storage shape (scalar or one slot per
// proposal) is fixed by New and never changes afterwards.
package responses
