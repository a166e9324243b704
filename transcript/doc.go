// Package transcript reads time-ordered segments from JSON-lines input.
//
// Each line is one segment object. Segments must arrive grouped: once a new
// group key appears, an earlier one may not reappear. Segments without an
// explicit id get a deterministic content-derived one, keeping repeated loads
// of the same file idempotent.
package transcript
