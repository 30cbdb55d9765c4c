package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS chunks (
	chunk_id   TEXT NOT NULL,
	collection TEXT NOT NULL,
	text       TEXT NOT NULL,
	metadata   TEXT NOT NULL,
	PRIMARY KEY (collection, chunk_id)
);
CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks (collection);
`

// SQLiteStore persists chunks in a SQLite database. Similarity is
// computed in process over the collection's rows, which keeps the
// schema plain and is adequate for the collection sizes a single
// gateway serves.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %q: %w", path, err)
	}
	// modernc's driver is not safe for concurrent writers on one
	// connection pool slot, so serialize access through a single conn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating chunks schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Ingest implements Store.
func (s *SQLiteStore) Ingest(ctx context.Context, collection, text string, metadata map[string]interface{}) (string, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	chunkID := chunkIDFromMetadata(metadata)

	encoded, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("encoding chunk metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO chunks (chunk_id, collection, text, metadata) VALUES (?, ?, ?, ?)`,
		chunkID, collection, text, string(encoded))
	if err != nil {
		return "", fmt.Errorf("inserting chunk: %w", err)
	}
	return chunkID, nil
}

// Query implements Store.
func (s *SQLiteStore) Query(ctx context.Context, collection, text string, topK int) ([]Result, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if topK <= 0 {
		topK = 5
	}
	queryVec := vectorize(text)

	rows, err := s.db.QueryContext(ctx,
		`SELECT chunk_id, text, metadata FROM chunks WHERE collection = ?`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var chunkID, chunkText, rawMetadata string
		if err := rows.Scan(&chunkID, &chunkText, &rawMetadata); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		var metadata map[string]interface{}
		if err := json.Unmarshal([]byte(rawMetadata), &metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata for chunk %q: %w", chunkID, err)
		}
		results = append(results, Result{
			ChunkID:  chunkID,
			Text:     chunkText,
			Metadata: metadata,
			Score:    cosine(queryVec, vectorize(chunkText)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
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
func (s *SQLiteStore) DeleteCollection(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ?`, collection); err != nil {
		return fmt.Errorf("deleting collection %q: %w", collection, err)
	}
	return nil
}

// Ping verifies the database is reachable, for readiness checks.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }
