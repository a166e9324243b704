package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/poiesic/chunkit/core"
)

// ErrGroupInterleaved indicates a group key reappeared after another group
// started. The aggregator requires each group's segments to be contiguous.
var ErrGroupInterleaved = errors.New("group keys must be contiguous")

// maxLineBytes bounds a single JSONL line. Subtitle lines are short; this
// guards against malformed input, not legitimate data.
const maxLineBytes = 1 << 20

// segmentRecord is the JSONL wire form of a segment.
type segmentRecord struct {
	Id       string            `json:"id,omitempty"`
	GroupKey string            `json:"group_key"`
	Text     string            `json:"text"`
	Start    float64           `json:"start"`
	End      float64           `json:"end"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ReadSegments parses JSON-lines input into validated, ordered segments.
// Blank lines are skipped. Errors carry the 1-based line number.
func ReadSegments(r io.Reader) ([]*core.Segment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var segments []*core.Segment
	seen := make(map[string]bool)
	currentGroup := ""

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec segmentRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		segment := &core.Segment{
			Id:       rec.Id,
			GroupKey: rec.GroupKey,
			Text:     rec.Text,
			Start:    rec.Start,
			End:      rec.End,
			Metadata: rec.Metadata,
		}
		if segment.Id == "" {
			segment.Id = core.IDFromContent(rec.GroupKey + "\x00" + rec.Text + "\x00" + fmt.Sprint(rec.Start))
		}

		if err := core.ValidateSegment(segment); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if segment.GroupKey != currentGroup {
			if seen[segment.GroupKey] {
				return nil, fmt.Errorf("line %d: %w: %q reappeared", line, ErrGroupInterleaved, segment.GroupKey)
			}
			seen[segment.GroupKey] = true
			currentGroup = segment.GroupKey
		}

		segments = append(segments, segment)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return segments, nil
}
