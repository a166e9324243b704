package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSegment() *Segment {
	return &Segment{
		Id:       "seg-1",
		GroupKey: "episode-1",
		Text:     "hello there",
		Start:    0.0,
		End:      1.5,
	}
}

func TestValidateSegment_Valid(t *testing.T) {
	require.NoError(t, ValidateSegment(validSegment()))
}

func TestValidateSegment_Nil(t *testing.T) {
	err := ValidateSegment(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSegment))
}

func TestValidateSegment_EmptyText(t *testing.T) {
	s := validSegment()
	s.Text = ""
	err := ValidateSegment(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyText))
}

func TestValidateSegment_EmptyGroupKey(t *testing.T) {
	s := validSegment()
	s.GroupKey = ""
	err := ValidateSegment(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyGroupKey))
}

func TestValidateSegment_EndBeforeStart(t *testing.T) {
	s := validSegment()
	s.Start = 5.0
	s.End = 2.0
	err := ValidateSegment(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeRange))
}

func TestValidateSegment_NegativeStart(t *testing.T) {
	s := validSegment()
	s.Start = -1.0
	s.End = 1.0
	err := ValidateSegment(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTimeRange))
}
