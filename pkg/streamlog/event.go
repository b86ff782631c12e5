package streamlog

import (
	"time"
)

// Limits imposed by the remote aggregation service on a single append call.
const (
	// MaxBatchBytes is the maximum total size of one append call, computed
	// as the sum of all event messages in UTF-8 plus EventOverheadBytes per
	// event.
	MaxBatchBytes = 1048576

	// MaxBatchCount is the maximum number of events in one append call.
	MaxBatchCount = 10000

	// EventOverheadBytes is the fixed per-event overhead the service adds
	// to each message when computing batch size.
	EventOverheadBytes = 26
)

// Shipper defaults.
const (
	// DefaultBufferCapacity is the event-count ceiling of the shipper's
	// buffer when none is configured.
	DefaultBufferCapacity = 10

	// DefaultTruncateSuffix is appended to messages that had to be cut down
	// to fit the per-event byte limit.
	DefaultTruncateSuffix = " ..."
)

// Event is one timestamped message unit submitted to a remote stream.
// Events are immutable once created: the shipper builds one per log record
// and discards it on successful flush or on close.
type Event struct {
	// Timestamp is the record's creation time in milliseconds since the
	// Unix epoch. Events in one batch must be non-decreasing by Timestamp.
	Timestamp int64 `json:"timestamp"`

	// Message is the formatted, UTF-8 encoded log message. Its encoded
	// length never exceeds MaxBatchBytes - EventOverheadBytes.
	Message string `json:"message"`
}

// Size returns the number of bytes this event contributes to a batch.
func (e Event) Size() int {
	return len(e.Message) + EventOverheadBytes
}

// DefaultStreamName returns the stream name used when none is configured:
// the given time's calendar date formatted as YYYY-MM-DD. The shipper
// resolves this fresh on every flush, so a long-lived handler rolls over to
// a new stream at midnight.
func DefaultStreamName(now time.Time) string {
	return now.Format("2006-01-02")
}
