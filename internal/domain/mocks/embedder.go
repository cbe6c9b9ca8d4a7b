package mocks

import (
	"context"
	"math"
)

// Embedder is a mock implementation of ports.Embedder. It produces a small
// deterministic unit vector from a character histogram of the text, so
// similar texts score higher than unrelated ones under dot-product search.
// Set Err to force every method to fail.
type Embedder struct {
	Err error
}

// NewEmbedder creates a new mock Embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

const embedderDimensions = 32

// Embed generates a deterministic embedding for the given text.
func (m *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	vec := make([]float32, embedderDimensions)
	for _, r := range text {
		vec[int(r)%embedderDimensions]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
