// PrismFlow is a hardened gateway between application code and an
// OpenAI-compatible LLM provider.
//
// It sanitizes and screens inbound conversations, forwards them
// upstream in buffered or SSE streaming mode, accounts token usage and
// cost, and optionally repairs and validates strict-JSON output.
//
// Usage:
//
//	# Start with defaults (OPENAI_API_KEY from the environment)
//	prismflow run
//
//	# Start with a configuration file
//	prismflow run --config /etc/prismflow/config.yaml
//
//	# Check a configuration file without starting
//	prismflow validate --config config.yaml
//
//	# Show version information
//	prismflow version
package main

func main() {
	Execute()
}
