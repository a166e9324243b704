package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/chunkit/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLedger(t *testing.T) ledger.Ledger {
	t.Helper()
	l, err := NewMemoryLedger()
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLedger_MarkAndContains(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	runID := ledger.NewRunID()
	err := l.Mark(ctx,
		&ledger.Entry{ChunkID: "c1", GroupKey: "ep1", RunID: runID},
		&ledger.Entry{ChunkID: "c2", GroupKey: "ep1", RunID: runID},
	)
	require.NoError(t, err)

	found, err := l.Contains(ctx, "c1", "c2", "c3")
	require.NoError(t, err)
	assert.True(t, found["c1"])
	assert.True(t, found["c2"])
	assert.False(t, found["c3"])
}

func TestLedger_MarkSetsInsertedAt(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	entry := &ledger.Entry{ChunkID: "c1", GroupKey: "ep1"}
	require.NoError(t, l.Mark(ctx, entry))
	assert.False(t, entry.InsertedAt.IsZero())
}

func TestLedger_RemarkOverwrites(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Mark(ctx, &ledger.Entry{ChunkID: "c1", GroupKey: "ep1", RunID: "run-a"}))
	require.NoError(t, l.Mark(ctx, &ledger.Entry{ChunkID: "c1", GroupKey: "ep1", RunID: "run-b"}))

	found, err := l.Contains(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, found["c1"])
}

func TestLedger_Contains_Empty(t *testing.T) {
	l := setupTestLedger(t)

	found, err := l.Contains(context.Background())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLedger_Checkpoint(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	cp := &ledger.Checkpoint{
		Source:   "season1.jsonl",
		RunID:    ledger.NewRunID(),
		Ingested: 120,
	}
	require.NoError(t, l.SaveCheckpoint(ctx, cp))
	assert.False(t, cp.UpdatedAt.IsZero())

	loaded, err := l.LoadCheckpoint(ctx, "season1.jsonl")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cp.Source, loaded.Source)
	assert.Equal(t, cp.RunID, loaded.RunID)
	assert.Equal(t, 120, loaded.Ingested)
}

func TestLedger_LoadCheckpoint_Missing(t *testing.T) {
	l := setupTestLedger(t)

	loaded, err := l.LoadCheckpoint(context.Background(), "nope.jsonl")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLedger_Closed(t *testing.T) {
	l, err := NewMemoryLedger()
	require.NoError(t, err)
	require.NoError(t, l.Close())
	assert.NoError(t, l.Close(), "closing twice is safe")

	_, err = l.Contains(context.Background(), "c1")
	assert.ErrorIs(t, err, ledger.ErrLedgerClosed)

	err = l.Mark(context.Background(), &ledger.Entry{ChunkID: "c1", GroupKey: "g"})
	assert.ErrorIs(t, err, ledger.ErrLedgerClosed)
}

func TestLedger_CancelledContext(t *testing.T) {
	l := setupTestLedger(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Contains(ctx, "c1")
	assert.ErrorIs(t, err, context.Canceled)

	err = l.Mark(ctx, &ledger.Entry{ChunkID: "c1", GroupKey: "g", InsertedAt: time.Now()})
	assert.ErrorIs(t, err, context.Canceled)
}
