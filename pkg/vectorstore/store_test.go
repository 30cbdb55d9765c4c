package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storesUnderTest builds each backend fresh for the shared behavior tests.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chunks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStore_IngestAndQuery(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Ingest(ctx, "docs", "the cat sat on the mat", map[string]interface{}{"source": "a"})
			require.NoError(t, err)
			_, err = store.Ingest(ctx, "docs", "stock prices fell sharply today", map[string]interface{}{"source": "b"})
			require.NoError(t, err)

			results, err := store.Query(ctx, "docs", "where did the cat sit", 5)
			require.NoError(t, err)
			require.Len(t, results, 2)

			assert.Equal(t, "the cat sat on the mat", results[0].Text)
			assert.Greater(t, results[0].Score, results[1].Score)
			assert.Equal(t, "a", results[0].Metadata["source"])
		})
	}
}

func TestStore_TopKLimit(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for i := 0; i < 10; i++ {
				_, err := store.Ingest(ctx, "docs", "hello world", nil)
				require.NoError(t, err)
			}

			results, err := store.Query(ctx, "docs", "hello", 3)
			require.NoError(t, err)
			assert.Len(t, results, 3)
		})
	}
}

func TestStore_UnknownCollection(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			results, err := store.Query(context.Background(), "nope", "anything", 5)
			require.NoError(t, err)
			assert.Empty(t, results)
		})
	}
}

func TestStore_ChunkIDFromMetadata(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			id, err := store.Ingest(ctx, "docs", "pinned", map[string]interface{}{"chunk_id": "chunk-42"})
			require.NoError(t, err)
			assert.Equal(t, "chunk-42", id)

			generated, err := store.Ingest(ctx, "docs", "unpinned", nil)
			require.NoError(t, err)
			assert.NotEmpty(t, generated)
			assert.NotEqual(t, "chunk-42", generated)
		})
	}
}

func TestStore_DeleteCollection(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Ingest(ctx, "scratch", "temp data", nil)
			require.NoError(t, err)
			_, err = store.Ingest(ctx, "keep", "kept data", nil)
			require.NoError(t, err)

			require.NoError(t, store.DeleteCollection(ctx, "scratch"))
			// Deleting twice is fine.
			require.NoError(t, store.DeleteCollection(ctx, "scratch"))

			gone, err := store.Query(ctx, "scratch", "temp", 5)
			require.NoError(t, err)
			assert.Empty(t, gone)

			kept, err := store.Query(ctx, "keep", "kept", 5)
			require.NoError(t, err)
			assert.Len(t, kept, 1)
		})
	}
}

func TestSQLiteStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks.db")
	ctx := context.Background()

	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = first.Ingest(ctx, "docs", "durable chunk", map[string]interface{}{"v": float64(1)})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	results, err := second.Query(ctx, "docs", "durable", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "durable chunk", results[0].Text)
	assert.Equal(t, float64(1), results[0].Metadata["v"])
}

func TestCosine(t *testing.T) {
	a := vectorize("the cat sat")
	assert.InDelta(t, 1.0, cosine(a, a), 1e-9)
	assert.Zero(t, cosine(a, vectorize("")))
	assert.Zero(t, cosine(a, vectorize("unrelated words entirely")))

	partial := cosine(a, vectorize("the dog sat"))
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, 1.0)
}
