// Package aggregate rolls up long ordered sequences of short segments into
// larger overlapping chunks suitable for embedding.
//
// The Aggregator slides a fixed-size window over the input in configurable
// strides. A stride smaller than the window produces overlapping chunks,
// which improves recall for semantic search over fragmented text such as
// subtitles. Windows that would span two different groups are dropped whole
// rather than truncated, so a chunk never mixes text from two sources.
package aggregate
