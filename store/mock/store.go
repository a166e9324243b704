package mock

import (
	"context"
	"sync"

	"github.com/poiesic/chunkit/store"
)

// InsertCall records the arguments of one Insert invocation.
type InsertCall struct {
	Ids     []string
	Vectors [][]float32
	Texts   []string
}

// Store is a test double for store.VectorStore.
// It records inserts in order and allows behavior injection via function fields.
type Store struct {
	// InsertFunc is called by Insert if set, after the call is recorded.
	InsertFunc func(ctx context.Context, ids []string, vectors [][]float32, texts []string) error

	// SearchFunc is called by Search if set.
	SearchFunc func(ctx context.Context, vectors [][]float32, limit int) ([][]store.Hit, error)

	mu          sync.Mutex
	inserts     []InsertCall
	indexCalls  int
	dropCalls   int
	closeCalls  int
	searchCalls int
}

var _ store.VectorStore = (*Store)(nil)

// NewStore creates a mock vector store.
func NewStore() *Store {
	return &Store{}
}

// Insert records the call and delegates to InsertFunc when set.
func (m *Store) Insert(ctx context.Context, ids []string, vectors [][]float32, texts []string) error {
	m.mu.Lock()
	m.inserts = append(m.inserts, InsertCall{
		Ids:     append([]string(nil), ids...),
		Vectors: append([][]float32(nil), vectors...),
		Texts:   append([]string(nil), texts...),
	})
	fn := m.InsertFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, ids, vectors, texts)
	}
	return nil
}

// CreateIndex counts the call and succeeds.
func (m *Store) CreateIndex(ctx context.Context) error {
	m.mu.Lock()
	m.indexCalls++
	m.mu.Unlock()
	return nil
}

// Search delegates to SearchFunc, or returns empty hit lists.
func (m *Store) Search(ctx context.Context, vectors [][]float32, limit int) ([][]store.Hit, error) {
	m.mu.Lock()
	m.searchCalls++
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, vectors, limit)
	}
	return make([][]store.Hit, len(vectors)), nil
}

// Drop counts the call and succeeds.
func (m *Store) Drop(ctx context.Context) error {
	m.mu.Lock()
	m.dropCalls++
	m.mu.Unlock()
	return nil
}

// Close counts the call and succeeds.
func (m *Store) Close() error {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
	return nil
}

// Inserts returns a copy of the recorded insert calls in order.
func (m *Store) Inserts() []InsertCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InsertCall(nil), m.inserts...)
}

// InsertedCount returns the total number of entities across recorded inserts.
func (m *Store) InsertedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, call := range m.inserts {
		total += len(call.Ids)
	}
	return total
}

// IndexCalls returns how many times CreateIndex was called.
func (m *Store) IndexCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexCalls
}
