package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Segment represents one time-ordered input record, typically a single
// subtitle line or transcript utterance. Segments sharing a GroupKey are
// contiguous in the input and ordered by Start time.
type Segment struct {
	Id       string
	GroupKey string
	Text     string
	Start    float64
	End      float64
	Metadata map[string]string // Optional passthrough metadata (e.g. "title", "speaker")
}

// Chunk is the windowed rollup of consecutive segments from a single group.
// Id, GroupKey, and Metadata are carried from the first constituent segment;
// Text is the space-joined concatenation of all constituent texts.
type Chunk struct {
	Id       string
	GroupKey string
	Text     string
	Start    float64
	End      float64
	Metadata map[string]string
}

// IDFromContent generates a deterministic identifier from text content using
// BLAKE2b hashing. Identical content always produces the same identifier,
// which keeps re-ingestion of the same source idempotent at the store level.
func IDFromContent(text string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
