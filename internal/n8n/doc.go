// Package n8n is a thin client for the n8n REST API.
//
// Every operation is a fixed request template against the versioned base
// path /api/v1, authenticated with the X-N8N-API-KEY header. The client
// performs no retries, no backoff, and no pagination beyond what the server
// returns in one response.
//
// Derived views (active workflows, name search, per-execution errors) are
// pure transformations over already-fetched responses and never issue
// additional network calls.
//
// # Failure Taxonomy
//
//   - *ConnectionError: the server was unreachable at the transport level
//   - *APIError: the server rejected the request (carries status and body)
//   - *ParseError: the response body was not valid JSON
//
// All failures surface verbatim to the caller; none are recovered silently.
package n8n
