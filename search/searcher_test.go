package search

import (
	"context"
	"errors"
	"testing"

	aimock "github.com/poiesic/chunkit/ai/mock"
	"github.com/poiesic/chunkit/store"
	storemock "github.com/poiesic/chunkit/store/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearcher_Validation(t *testing.T) {
	_, err := NewSearcher(nil, storemock.NewStore())
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewSearcher(aimock.NewEmbedder(), nil)
	assert.ErrorIs(t, err, ErrStoreRequired)
}

func TestSearcher_Find(t *testing.T) {
	vstore := storemock.NewStore()
	vstore.SearchFunc = func(ctx context.Context, vectors [][]float32, limit int) ([][]store.Hit, error) {
		require.Len(t, vectors, 1)
		assert.Equal(t, 3, limit)
		return [][]store.Hit{{
			{Id: "c1", Text: "closest", Score: 0.12},
			{Id: "c2", Text: "next", Score: 0.48},
		}}, nil
	}

	s, err := NewSearcher(aimock.NewEmbedder(), vstore)
	require.NoError(t, err)

	hits, err := s.Find(context.Background(), "what happened in the finale", 3)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "c1", hits[0].Id)
	assert.Equal(t, "closest", hits[0].Text)
}

func TestSearcher_Find_EmptyQuery(t *testing.T) {
	s, err := NewSearcher(aimock.NewEmbedder(), storemock.NewStore())
	require.NoError(t, err)

	_, err = s.Find(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearcher_Find_EmbedderError(t *testing.T) {
	embedder := aimock.NewEmbedder()
	embedErr := errors.New("embedding down")
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, embedErr
	}

	s, err := NewSearcher(embedder, storemock.NewStore())
	require.NoError(t, err)

	_, err = s.Find(context.Background(), "query", 5)
	assert.ErrorIs(t, err, embedErr)
}

func TestSearcher_Find_StoreError(t *testing.T) {
	vstore := storemock.NewStore()
	storeErr := errors.New("not loaded")
	vstore.SearchFunc = func(ctx context.Context, vectors [][]float32, limit int) ([][]store.Hit, error) {
		return nil, storeErr
	}

	s, err := NewSearcher(aimock.NewEmbedder(), vstore)
	require.NoError(t, err)

	_, err = s.Find(context.Background(), "query", 5)
	assert.ErrorIs(t, err, storeErr)
}
