// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package aggregate

import (
	"iter"
	"log/slog"
	"strings"

	"github.com/poiesic/chunkit/core"
)

const (
	// DefaultWindow is the default number of segments merged per chunk.
	DefaultWindow = 20

	// DefaultStride is the default step between window start positions.
	DefaultStride = 4
)

// Aggregator merges consecutive segments into overlapping chunks.
// It is stateless after construction and safe for concurrent use.
type Aggregator struct {
	window int
	stride int
	logger *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// New creates an Aggregator with the given window and stride.
// Both must be positive; invalid values are rejected before any iteration.
func New(window, stride int, opts ...Option) (*Aggregator, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	if stride <= 0 {
		return nil, ErrInvalidStride
	}

	a := &Aggregator{
		window: window,
		stride: stride,
		logger: slog.Default().With("component", "aggregator"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Chunks returns a lazy sequence of chunks over the segments.
// The sequence is restartable: ranging over it again re-runs the window scan
// from the start and yields an identical sequence. Windows crossing a group
// boundary are dropped whole. A short final window is still emitted when it
// stays inside one group.
func (a *Aggregator) Chunks(segments []*core.Segment) iter.Seq[*core.Chunk] {
	return func(yield func(*core.Chunk) bool) {
		n := len(segments)
		for i := 0; i < n; i += a.stride {
			last := i + a.window - 1
			if last > n-1 {
				last = n - 1
			}

			if segments[i].GroupKey != segments[last].GroupKey {
				// Window spans two groups; skip this start position entirely.
				continue
			}

			if !yield(a.merge(segments[i : last+1])) {
				return
			}
		}
	}
}

// Collect runs the window scan eagerly and returns all chunks as a slice.
func (a *Aggregator) Collect(segments []*core.Segment) []*core.Chunk {
	var chunks []*core.Chunk
	for chunk := range a.Chunks(segments) {
		chunks = append(chunks, chunk)
	}
	a.logger.Debug("aggregated segments",
		"segments", len(segments), "chunks", len(chunks),
		"window", a.window, "stride", a.stride)
	return chunks
}

// merge builds a single chunk from a run of segments within one group.
// Identity fields come from the first segment, the end time from the last.
func (a *Aggregator) merge(run []*core.Segment) *core.Chunk {
	texts := make([]string, len(run))
	for i, s := range run {
		texts[i] = s.Text
	}

	first := run[0]
	return &core.Chunk{
		Id:       first.Id,
		GroupKey: first.GroupKey,
		Text:     strings.Join(texts, " "),
		Start:    first.Start,
		End:      run[len(run)-1].End,
		Metadata: first.Metadata,
	}
}
