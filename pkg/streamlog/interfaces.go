package streamlog

import (
	"context"
	"fmt"
	"io"
)

// StreamClient is the narrow interface over the remote aggregation service's
// group/stream lifecycle and append API. It owns no buffering logic; the
// shipper drives it.
//
// List calls paginate through an opaque page token: pass the NextToken of
// the previous page, or "" for the first page. A page with an empty
// NextToken is the last one. Prefix matching is a service-side prefix
// search, so results may include non-exact matches; callers filter.
//
// Create and retention calls report the service's HTTP-style status code so
// the caller can apply the provisioning failure policy. Transport failures
// (connectivity, auth) surface as opaque errors and are never wrapped here.
type StreamClient interface {
	// ListGroups returns one page of groups whose names start with prefix.
	ListGroups(ctx context.Context, prefix, pageToken string) (*GroupPage, error)

	// CreateGroup creates a group and returns the service's status code.
	CreateGroup(ctx context.Context, name string) (int, error)

	// SetRetention sets a group's retention policy in days and returns the
	// service's status code.
	SetRetention(ctx context.Context, name string, days int) (int, error)

	// ListStreams returns one page of streams in group whose names start
	// with prefix.
	ListStreams(ctx context.Context, group, prefix, pageToken string) (*StreamPage, error)

	// CreateStream creates a stream in group and returns the service's
	// status code.
	CreateStream(ctx context.Context, group, name string) (int, error)

	// PutEvents appends a batch of events to a stream. The token must be
	// the stream's current sequence token ("0" for a first write); a
	// mismatch is a client error. A non-nil result with a nil Rejected is
	// the only unambiguous success.
	PutEvents(ctx context.Context, group, stream string, events []Event, token string) (*PutResult, error)
}

// GroupPage is one page of a group listing.
type GroupPage struct {
	// Groups holds the group names on this page.
	Groups []string

	// NextToken is the cursor for the next page, or "" on the last page.
	NextToken string
}

// StreamPage is one page of a stream listing.
type StreamPage struct {
	// Streams holds the stream descriptors on this page.
	Streams []StreamInfo

	// NextToken is the cursor for the next page, or "" on the last page.
	NextToken string
}

// StreamInfo describes one stream in a listing.
type StreamInfo struct {
	// Name is the stream's name within its group.
	Name string

	// SequenceToken is the stream's current append token. It is empty for
	// a stream that has never been written to; writers use "0" then.
	SequenceToken string
}

// PutResult is the outcome of an append call that reached the service.
type PutResult struct {
	// NextSequenceToken is the token to use for the stream's next append.
	// The shipper does not cache it: tokens are re-resolved per flush
	// because another writer may advance the stream in between.
	NextSequenceToken string

	// Rejected identifies events the service refused even though the call
	// itself succeeded. Nil when all events were accepted.
	Rejected *RejectedEvents
}

// RejectedEvents pinpoints the ranges of a batch the service refused.
// Index fields are -1 when the corresponding condition did not occur.
type RejectedEvents struct {
	// TooNewStartIndex is the index of the first event timestamped too far
	// in the future; it and everything after it was refused.
	TooNewStartIndex int

	// TooOldEndIndex is the index just past the last event older than the
	// service allows.
	TooOldEndIndex int

	// ExpiredEndIndex is the index just past the last event older than the
	// group's retention period.
	ExpiredEndIndex int
}

// String summarizes the rejection for error messages.
func (r *RejectedEvents) String() string {
	return fmt.Sprintf("tooNewStartIndex=%d tooOldEndIndex=%d expiredEndIndex=%d",
		r.TooNewStartIndex, r.TooOldEndIndex, r.ExpiredEndIndex)
}

// Sink is the handler contract a shipper exposes to a logging pipeline:
// buffer one record, force a delivery, release resources. Any logging
// framework can plug a Sink in as a destination.
type Sink interface {
	io.Closer

	// Emit buffers one record, delivering the current batch first if the
	// buffer is at capacity.
	Emit(ctx context.Context, record Record) error

	// Flush delivers the buffered batch now. No-op on an empty buffer.
	Flush(ctx context.Context) error
}
