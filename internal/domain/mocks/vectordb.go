package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/forkful/forkful-core/internal/domain/ports"
)

type vectorEntry struct {
	Title     string
	Embedding []float32
}

// VectorDB is a mock implementation of ports.VectorDB. Search ranks by dot
// product, which matches cosine ranking for the unit vectors the Embedder
// mock produces. Set Err to force every method to fail.
type VectorDB struct {
	mu      sync.Mutex
	Entries map[string]vectorEntry

	Err error
}

// NewVectorDB creates a new mock VectorDB.
func NewVectorDB() *VectorDB {
	return &VectorDB{
		Entries: make(map[string]vectorEntry),
	}
}

// Upsert stores or replaces a recipe's embedding.
func (m *VectorDB) Upsert(_ context.Context, recipeID, title string, embedding []float32) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries[recipeID] = vectorEntry{Title: title, Embedding: embedding}
	return nil
}

// Delete removes a recipe's embedding.
func (m *VectorDB) Delete(_ context.Context, recipeID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Entries, recipeID)
	return nil
}

// Search returns the stored recipes most similar to the given embedding.
func (m *VectorDB) Search(_ context.Context, embedding []float32, limit int) ([]ports.SimilarRecipe, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	hits := make([]ports.SimilarRecipe, 0, len(m.Entries))
	for id, entry := range m.Entries {
		hits = append(hits, ports.SimilarRecipe{
			RecipeID: id,
			Title:    entry.Title,
			Score:    dot(embedding, entry.Embedding),
		})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
