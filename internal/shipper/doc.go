// Package shipper implements the batch buffer engine behind the
// streamlog.Sink contract: it accumulates formatted events, enforces the
// remote service's size and count ceilings, and drives flush cycles against
// a streamlog.StreamClient, including idempotent group/stream provisioning
// and sequence-token bookkeeping.
//
// The model is single-threaded, synchronous, and blocking. Every operation
// that contacts the remote service blocks until a response or a transport
// failure. There is no background flush goroutine and no timer: a flush
// happens only when Emit detects a limit would be exceeded, when Flush is
// called, or on Close. A Handler performs no internal locking; callers
// sharing one instance across goroutines must serialize access externally
// (or go through SlogHandler, which does).
//
// No retry is performed internally. Every failure propagates to the caller
// of Emit, Flush, or Close; nothing is logged or swallowed.
package shipper
