// Package fetch provides the HTTP client used to download the remote example
// list and the viewconfs it points to.
//
// The client does no retries: a transport error or a non-2xx response is
// returned to the caller, which aborts the run. Requests carry the caller's
// context, an optional per-request timeout and an optional SOCKS5 proxy.
package fetch
