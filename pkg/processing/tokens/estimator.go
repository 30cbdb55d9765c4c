package tokens

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"
)

// Per-message overhead in the chat format: role/name framing plus the
// priming tokens of the assistant reply.
const (
	messageOverhead = 4
	replyPriming    = 3
)

// Estimator counts prompt tokens for chat messages. When a BPE encoding
// is available it tokenizes exactly; otherwise it falls back to a
// characters/4 heuristic so estimation never fails a request.
type Estimator struct {
	encoding *tiktoken.Tiktoken
}

// NewEstimator creates an estimator for the given model. Unknown models
// fall back to the cl100k_base encoding, then to the heuristic.
func NewEstimator(model string) *Estimator {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			slog.Warn("token encoding unavailable, using heuristic estimates", "model", model, "error", err)
			encoding = nil
		}
	}
	return &Estimator{encoding: encoding}
}

// EstimateText returns the token count for a single piece of text.
func (e *Estimator) EstimateText(text string) int {
	if e.encoding == nil {
		// Rough heuristic: one token per four characters.
		return (len(text) + 3) / 4
	}
	return len(e.encoding.Encode(text, nil, nil))
}

// Message is the minimal (role, content) view needed for estimation.
type Message struct {
	Role    string
	Content string
}

// EstimateMessages returns the estimated prompt token count for a chat
// exchange: tokens for each message's role and content plus the fixed
// chat-format overhead.
func (e *Estimator) EstimateMessages(messages []Message) int {
	total := replyPriming
	for _, msg := range messages {
		total += messageOverhead
		total += e.EstimateText(msg.Role)
		total += e.EstimateText(msg.Content)
	}
	return total
}
