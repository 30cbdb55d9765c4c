/*
Package upstream implements the outbound client for the OpenAI-compatible
chat-completions provider the gateway proxies to.

The client operates in two modes sharing one transport configuration
(base URL, bearer credential, fixed timeout):

  - Buffered: one request, full response parsed and returned, or a typed
    *UpstreamError carrying the provider's HTTP status and body.
  - Streaming: a Server-Sent Events connection consumed line by line;
    each well-formed delta with non-empty content is delivered as a chunk,
    and the [DONE] sentinel terminates the stream.

A missing credential is detected before any network I/O and surfaces as a
*ConfigError. No retries are performed; a transient failure surfaces
immediately.
*/
package upstream
