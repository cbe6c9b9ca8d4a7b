package integration

import (
	"context"
	"os"
	"testing"

	"github.com/forkful/forkful-core/internal/domain/mocks"
	"github.com/forkful/forkful-core/internal/infrastructure/config"
	"github.com/forkful/forkful-core/internal/infrastructure/vectordb/qdrant"
)

const (
	testQdrantHost = "localhost"
	testQdrantPort = 6334
	testCollection = "forkful_integration_test"
)

// testVectorRepo is set only when INTEGRATION_TEST=1; the SQLite lifecycle
// tests run regardless.
var testVectorRepo *qdrant.Repository

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "1" {
		os.Exit(m.Run())
	}

	cfg := config.QdrantConfig{
		Host:       testQdrantHost,
		Port:       testQdrantPort,
		Collection: testCollection,
	}

	var err error
	testVectorRepo, err = qdrant.NewRepository(cfg)
	if err != nil {
		panic("failed to create repository: " + err.Error())
	}

	// The collection's vector size must match the test embedder's output.
	ctx := context.Background()
	probe, err := mocks.NewEmbedder().Embed(ctx, "probe")
	if err != nil {
		panic("failed to probe embedder: " + err.Error())
	}

	_ = testVectorRepo.DeleteCollection(ctx) // Ignore error if collection doesn't exist
	if err := testVectorRepo.EnsureCollection(ctx, uint64(len(probe))); err != nil {
		panic("failed to create collection: " + err.Error())
	}

	code := m.Run()

	_ = testVectorRepo.DeleteCollection(ctx)
	testVectorRepo.Close()

	os.Exit(code)
}
