package core

import "fmt"

// ValidateSegment checks that a segment is well-formed before it enters the
// aggregation pipeline. Returns an error wrapping ErrInvalidSegment so callers
// can test with errors.Is.
func ValidateSegment(s *Segment) error {
	if s == nil {
		return fmt.Errorf("%w: nil segment", ErrInvalidSegment)
	}
	if s.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, ErrEmptyText)
	}
	if s.GroupKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSegment, ErrEmptyGroupKey)
	}
	if s.Start < 0 || s.End < s.Start {
		return fmt.Errorf("%w: %w: start=%v end=%v", ErrInvalidSegment, ErrInvalidTimeRange, s.Start, s.End)
	}
	return nil
}
