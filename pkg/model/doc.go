// Package model defines the typed representation of a remote form and its
// submissions. Raw* types mirror the upstream JSON payloads as received; the
// FieldDefinition, Answer and Submission types are the normalised shapes the
// rest of the module produces. FieldDefinition is a closed tagged variant keyed
// by FieldKind so every switch over kinds stays exhaustive. Anomalies found
// while building these values are reported as Warning entries rather than
// errors, so callers always receive a best-effort result.
package model
