package aggregate

import (
	"fmt"
	"testing"

	"github.com/poiesic/chunkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(group, text string, start, end float64) *core.Segment {
	return &core.Segment{
		Id:       core.IDFromContent(group + ":" + text),
		GroupKey: group,
		Text:     text,
		Start:    start,
		End:      end,
	}
}

func TestNew_InvalidWindow(t *testing.T) {
	_, err := New(0, 1)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = New(-3, 1)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestNew_InvalidStride(t *testing.T) {
	_, err := New(5, 0)
	assert.ErrorIs(t, err, ErrInvalidStride)

	_, err = New(5, -1)
	assert.ErrorIs(t, err, ErrInvalidStride)
}

func TestAggregator_EmptyInput(t *testing.T) {
	agg, err := New(2, 1)
	require.NoError(t, err)

	chunks := agg.Collect(nil)
	assert.Empty(t, chunks)
}

func TestAggregator_GroupBoundary(t *testing.T) {
	// Windows that would span two groups are dropped, not truncated.
	segments := []*core.Segment{
		seg("A", "hi", 0, 1),
		seg("A", "there", 1, 2),
		seg("B", "bye", 2, 3),
	}

	agg, err := New(2, 1)
	require.NoError(t, err)

	chunks := agg.Collect(segments)
	require.Len(t, chunks, 2)

	assert.Equal(t, "hi there", chunks[0].Text)
	assert.Equal(t, "A", chunks[0].GroupKey)
	assert.Equal(t, 0.0, chunks[0].Start)
	assert.Equal(t, 2.0, chunks[0].End)

	assert.Equal(t, "bye", chunks[1].Text)
	assert.Equal(t, "B", chunks[1].GroupKey)
	assert.Equal(t, 2.0, chunks[1].Start)
	assert.Equal(t, 3.0, chunks[1].End)
}

func TestAggregator_NoChunkSpansGroups(t *testing.T) {
	var segments []*core.Segment
	for g := 0; g < 3; g++ {
		for i := 0; i < 7; i++ {
			start := float64(g*7 + i)
			segments = append(segments, seg(fmt.Sprintf("G%d", g), fmt.Sprintf("w%d", i), start, start+1))
		}
	}

	for _, window := range []int{1, 2, 3, 5, 8} {
		for _, stride := range []int{1, 2, 4} {
			agg, err := New(window, stride)
			require.NoError(t, err)

			for chunk := range agg.Chunks(segments) {
				// Every chunk's time span must lie inside its own group's range.
				assert.GreaterOrEqual(t, chunk.End, chunk.Start)
				for _, s := range segments {
					if s.Start >= chunk.Start && s.End <= chunk.End {
						assert.Equal(t, chunk.GroupKey, s.GroupKey,
							"window=%d stride=%d: chunk spans groups", window, stride)
					}
				}
			}
		}
	}
}

func TestAggregator_ChunkCount(t *testing.T) {
	// Emitted chunk count equals the number of start positions whose window
	// stays inside one group.
	segments := []*core.Segment{
		seg("A", "a0", 0, 1),
		seg("A", "a1", 1, 2),
		seg("A", "a2", 2, 3),
		seg("A", "a3", 3, 4),
		seg("B", "b0", 4, 5),
		seg("B", "b1", 5, 6),
	}

	window, stride := 3, 2
	agg, err := New(window, stride)
	require.NoError(t, err)

	expected := 0
	n := len(segments)
	for i := 0; i < n; i += stride {
		last := i + window - 1
		if last > n-1 {
			last = n - 1
		}
		if segments[i].GroupKey == segments[last].GroupKey {
			expected++
		}
	}

	chunks := agg.Collect(segments)
	assert.Len(t, chunks, expected)
}

func TestAggregator_Idempotent(t *testing.T) {
	segments := []*core.Segment{
		seg("A", "one", 0, 1),
		seg("A", "two", 1, 2),
		seg("A", "three", 2, 3),
		seg("B", "four", 3, 4),
	}

	agg, err := New(2, 1)
	require.NoError(t, err)

	first := agg.Collect(segments)
	second := agg.Collect(segments)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, *first[i], *second[i])
	}
}

func TestAggregator_Overlap(t *testing.T) {
	segments := []*core.Segment{
		seg("A", "a", 0, 1),
		seg("A", "b", 1, 2),
		seg("A", "c", 2, 3),
		seg("A", "d", 3, 4),
	}

	agg, err := New(3, 1)
	require.NoError(t, err)

	chunks := agg.Collect(segments)
	require.Len(t, chunks, 4)
	assert.Equal(t, "a b c", chunks[0].Text)
	assert.Equal(t, "b c d", chunks[1].Text)
	// Trailing windows shrink but are still emitted.
	assert.Equal(t, "c d", chunks[2].Text)
	assert.Equal(t, "d", chunks[3].Text)
}

func TestAggregator_ChunkIdentity(t *testing.T) {
	meta := map[string]string{"title": "pilot"}
	segments := []*core.Segment{
		{Id: "first", GroupKey: "A", Text: "x", Start: 0, End: 1, Metadata: meta},
		{Id: "second", GroupKey: "A", Text: "y", Start: 1, End: 2},
	}

	agg, err := New(2, 2)
	require.NoError(t, err)

	chunks := agg.Collect(segments)
	require.Len(t, chunks, 1)
	assert.Equal(t, "first", chunks[0].Id, "chunk ID comes from the first constituent")
	assert.Equal(t, meta, chunks[0].Metadata)
}

func TestAggregator_LazySequenceStopsEarly(t *testing.T) {
	segments := []*core.Segment{
		seg("A", "a", 0, 1),
		seg("A", "b", 1, 2),
		seg("A", "c", 2, 3),
	}

	agg, err := New(1, 1)
	require.NoError(t, err)

	count := 0
	for range agg.Chunks(segments) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestAggregator_SingleSegment(t *testing.T) {
	agg, err := New(10, 3)
	require.NoError(t, err)

	chunks := agg.Collect([]*core.Segment{seg("A", "only", 0, 2)})
	require.Len(t, chunks, 1)
	assert.Equal(t, "only", chunks[0].Text)
}
