// Package vectorstore provides chunk storage with similarity search over
// named collections. Two backends implement the Store interface: an
// in-memory store for tests and single-process deployments, and a
// SQLite-backed store that persists chunks across restarts. Both rank
// query results by lexical cosine similarity over term frequencies.
package vectorstore
