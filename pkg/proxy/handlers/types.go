package handlers

import (
	"context"

	"github.com/prismflow/gateway/pkg/upstream"
)

// Completer is the upstream surface the chat handlers depend on. The
// production implementation is *upstream.Client; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, req *upstream.CompletionRequest) (*upstream.Completion, error)
	Stream(ctx context.Context, req *upstream.CompletionRequest) (<-chan upstream.StreamChunk, error)
}
