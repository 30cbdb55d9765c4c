package upstream

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
)

// dataPrefix marks payload-carrying lines in the upstream SSE stream.
const dataPrefix = "data: "

// doneSentinel is the literal value terminating the upstream stream.
const doneSentinel = "[DONE]"

// consume reads the upstream SSE body line by line and delivers chunks on
// out. It closes out when the stream ends (sentinel, EOF, error, or context
// cancellation) and always closes the response body.
//
// Ordering guarantee: chunks are sent in upstream arrival order, and
// nothing is sent after the channel closes. Lines that fail to parse as
// JSON are logged and skipped without terminating the stream; the
// OnMalformedLine hook, when configured, observes each skipped line.
func (c *Client) consume(ctx context.Context, body io.ReadCloser, out chan<- StreamChunk) {
	defer close(out)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		// Client disconnection cancels ctx; stop consuming upstream.
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "stream consumption cancelled", "reason", ctx.Err())
			return
		default:
		}

		line := scanner.Text()
		if line == "" || !strings.HasPrefix(line, dataPrefix) {
			// Comments, event names, and keep-alive blanks.
			continue
		}

		data := strings.TrimPrefix(line, dataPrefix)
		if data == doneSentinel {
			return
		}

		var frame streamResponse
		if err := json.Unmarshal([]byte(data), &frame); err != nil {
			slog.WarnContext(ctx, "skipping malformed stream line", "error", err)
			if c.config.OnMalformedLine != nil {
				c.config.OnMalformedLine(data)
			}
			continue
		}

		if len(frame.Choices) == 0 {
			continue
		}

		delta := frame.Choices[0].Delta.Content
		if delta == "" {
			// Role announcements and finish frames carry no content.
			continue
		}

		select {
		case out <- StreamChunk{Delta: delta}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case out <- StreamChunk{Err: &StreamError{Message: "failed to read stream", Cause: err}}:
		case <-ctx.Done():
		}
	}
}
