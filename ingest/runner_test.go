package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/chunkit/core"
	storemock "github.com/poiesic/chunkit/store/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_IngestsAllSets(t *testing.T) {
	vstore := storemock.NewStore()
	p, err := NewPipeline(testEmbedder(), vstore, testConfig())
	require.NoError(t, err)

	r, err := NewRunner(p, WithPoolSize(2))
	require.NoError(t, err)
	defer r.Release()

	count, err := r.Run(context.Background(), makeChunks(5), makeChunks(3), makeChunks(2))
	require.NoError(t, err)
	assert.Equal(t, 10, count)
	assert.Equal(t, 10, vstore.InsertedCount())
}

func TestRunner_EmptyInput(t *testing.T) {
	p, err := NewPipeline(testEmbedder(), storemock.NewStore(), testConfig())
	require.NoError(t, err)

	r, err := NewRunner(p)
	require.NoError(t, err)
	defer r.Release()

	count, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunner_PartialFailure(t *testing.T) {
	storeErr := errors.New("insert failed")
	vstore := storemock.NewStore()
	vstore.InsertFunc = func(ctx context.Context, ids []string, vectors [][]float32, texts []string) error {
		// Fail inserts for the set whose chunks carry the poison group.
		if len(texts) > 0 && texts[0] == "poison" {
			return storeErr
		}
		return nil
	}

	p, err := NewPipeline(testEmbedder(), vstore, testConfig())
	require.NoError(t, err)

	r, err := NewRunner(p, WithPoolSize(2))
	require.NoError(t, err)
	defer r.Release()

	poisoned := []*core.Chunk{{Id: "p1", GroupKey: "bad", Text: "poison"}}

	count, err := r.Run(context.Background(), makeChunks(4), poisoned)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 4, count, "healthy sets still count")
}

func TestNewRunner_NilPipeline(t *testing.T) {
	_, err := NewRunner(nil)
	assert.Error(t, err)
}
