package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryChunk struct {
	id       string
	text     string
	metadata map[string]interface{}
	vector   termVector
}

// MemoryStore keeps all chunks in process memory. Safe for concurrent
// use.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]memoryChunk
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]memoryChunk)}
}

// Ingest implements Store.
func (s *MemoryStore) Ingest(_ context.Context, collection, text string, metadata map[string]interface{}) (string, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	chunkID := chunkIDFromMetadata(metadata)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], memoryChunk{
		id:       chunkID,
		text:     text,
		metadata: metadata,
		vector:   vectorize(text),
	})
	return chunkID, nil
}

// Query implements Store.
func (s *MemoryStore) Query(_ context.Context, collection, text string, topK int) ([]Result, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if topK <= 0 {
		topK = 5
	}
	queryVec := vectorize(text)

	s.mu.RLock()
	defer s.mu.RUnlock()
	chunks, ok := s.collections[collection]
	if !ok {
		return []Result{}, nil
	}

	results := make([]Result, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, Result{
			ChunkID:  c.id,
			Text:     c.text,
			Metadata: c.metadata,
			Score:    cosine(queryVec, c.vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteCollection implements Store.
func (s *MemoryStore) DeleteCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, collection)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

func chunkIDFromMetadata(metadata map[string]interface{}) string {
	if id, ok := metadata["chunk_id"].(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
