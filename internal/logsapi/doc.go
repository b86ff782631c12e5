// Package logsapi implements the streamlog.StreamClient interface over the
// aggregation service's HTTP/JSON API.
//
// The client is a thin transport: it owns no buffering, no retries, and no
// provisioning policy. Create and retention calls report the service's
// status code to the caller, because the provisioning protocol in the
// shipper decides what a client error means. Describe and append calls turn
// non-2xx statuses into errors directly.
//
// Requests carry an HS256 bearer token minted from the configured signing
// key and client ID; tokens are cached and renewed shortly before expiry.
// With no signing key configured the client sends unauthenticated requests,
// which is useful against development servers.
package logsapi
