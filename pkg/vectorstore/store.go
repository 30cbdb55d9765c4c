package vectorstore

import (
	"context"
	"fmt"
)

// DefaultCollection is used when a caller does not name a collection.
const DefaultCollection = "default"

// Result is one ranked chunk returned by a query.
type Result struct {
	ChunkID  string                 `json:"chunk_id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Score    float64                `json:"score"`
}

// Store is a collection-scoped chunk store with similarity search.
type Store interface {
	// Ingest stores text with its metadata in the named collection,
	// creating the collection if needed, and returns the chunk ID. A
	// "chunk_id" metadata entry overrides the generated ID.
	Ingest(ctx context.Context, collection, text string, metadata map[string]interface{}) (string, error)

	// Query returns up to topK chunks from the collection ranked by
	// similarity to text, most similar first. Querying a collection
	// that does not exist returns an empty slice.
	Query(ctx context.Context, collection, text string, topK int) ([]Result, error)

	// DeleteCollection removes a collection and all of its chunks.
	// Deleting an absent collection is not an error.
	DeleteCollection(ctx context.Context, collection string) error

	// Close releases backend resources.
	Close() error
}

// NotFoundError reports a lookup against a chunk that does not exist.
type NotFoundError struct {
	Collection string
	ChunkID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chunk %q not found in collection %q", e.ChunkID, e.Collection)
}
