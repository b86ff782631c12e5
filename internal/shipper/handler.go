package shipper

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// Config holds construction parameters for a Handler.
type Config struct {
	// Group is the name of the destination group. Required.
	Group string

	// Stream is the destination stream name. If empty, each flush targets
	// a stream named after the current calendar date (YYYY-MM-DD), so the
	// destination rolls over at midnight.
	Stream string

	// Capacity is the buffer's event-count ceiling. 0 means the default
	// of streamlog.DefaultBufferCapacity.
	Capacity int

	// RetainDays is the retention policy applied to the group if, and only
	// if, this handler creates it. A pre-existing group's policy is never
	// touched: first writer wins.
	RetainDays int

	// Formatter renders records into event messages. Defaults to
	// streamlog.TextFormatter.
	Formatter streamlog.Formatter

	// TruncateSuffix is appended to messages cut down to fit the per-event
	// byte limit. Defaults to streamlog.DefaultTruncateSuffix.
	TruncateSuffix string

	// DropOnReject clears the buffer when the service rejects events, so a
	// poisoned batch cannot wedge the handler. When false (the default)
	// the buffer survives the DeliveryError and the next flush resubmits
	// the same events.
	DropOnReject bool
}

// SetDefaults fills in zero-valued optional fields.
func (c *Config) SetDefaults() {
	if c.Capacity == 0 {
		c.Capacity = streamlog.DefaultBufferCapacity
	}
	if c.Formatter == nil {
		c.Formatter = streamlog.TextFormatter{}
	}
	if c.TruncateSuffix == "" {
		c.TruncateSuffix = streamlog.DefaultTruncateSuffix
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Group == "" {
		return &streamlog.ConfigError{Reason: "group name cannot be empty"}
	}
	if c.Capacity < 0 || c.Capacity > streamlog.MaxBatchCount {
		return &streamlog.ConfigError{
			Reason: fmt.Sprintf("capacity %d not in range 0 ... %d", c.Capacity, streamlog.MaxBatchCount),
		}
	}
	return nil
}

// Handler implements the streamlog.Sink interface over a remote stream
// client. One Handler owns one buffer; it is not safe for concurrent use.
type Handler struct {
	client streamlog.StreamClient
	config Config

	buffer []streamlog.Event
	size   int
	closed bool
}

// New creates a Handler and synchronously ensures the destination group
// exists, creating it (and applying RetainDays) when absent.
func New(ctx context.Context, client streamlog.StreamClient, config Config) (*Handler, error) {
	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	h := &Handler{
		client: client,
		config: config,
	}
	if err := h.ensureGroup(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// formatEvent renders a record into an Event, truncating the encoded
// message so that it never exceeds the per-event byte limit. It returns the
// event's batch size contribution (message bytes plus the fixed per-event
// overhead) alongside the event.
func (h *Handler) formatEvent(record streamlog.Record) (int, streamlog.Event) {
	limit := streamlog.MaxBatchBytes - streamlog.EventOverheadBytes
	msg := []byte(h.config.Formatter.Format(record))
	if len(msg) > limit {
		limit -= len(h.config.TruncateSuffix)
		msg = append(trimPartialRune(msg[:limit]), h.config.TruncateSuffix...)
	}

	event := streamlog.Event{
		Timestamp: record.Time.UnixMilli(),
		Message:   string(msg),
	}
	return len(msg) + streamlog.EventOverheadBytes, event
}

// trimPartialRune drops trailing bytes that do not form a complete UTF-8
// rune, so a byte-level cut never leaves an invalid tail.
func trimPartialRune(b []byte) []byte {
	for len(b) > 0 {
		r, size := utf8.DecodeLastRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return b
}

// Emit buffers one record, delivering the current batch first if the buffer
// is at its count capacity or at the service's batch byte ceiling. Both
// limits are checked before the append, so the buffer never holds more than
// Capacity events when an append is attempted. If the pre-append flush
// fails, the error propagates and the record is not buffered.
func (h *Handler) Emit(ctx context.Context, record streamlog.Record) error {
	if h.closed {
		return streamlog.ErrHandlerClosed
	}
	if len(h.buffer) >= h.config.Capacity || h.size >= streamlog.MaxBatchBytes {
		if err := h.Flush(ctx); err != nil {
			return err
		}
	}

	size, event := h.formatEvent(record)
	h.buffer = append(h.buffer, event)
	h.size += size
	return nil
}

// Flush delivers the buffered batch to the remote stream. It resolves the
// effective stream name, runs the stream-ensure protocol to obtain the
// current sequence token, and appends the events (already in emission
// order, which is chronological order). The buffer is cleared only on an
// unambiguous success.
//
// On a DeliveryError the buffer is left intact unless DropOnReject is set,
// so the caller can retry; a caller that neither retries nor drains will
// accumulate a growing buffer.
func (h *Handler) Flush(ctx context.Context) error {
	if len(h.buffer) == 0 {
		return nil
	}

	stream := h.config.Stream
	if stream == "" {
		stream = streamlog.DefaultStreamName(time.Now())
	}
	token, err := h.ensureStream(ctx, stream)
	if err != nil {
		return err
	}

	result, err := h.client.PutEvents(ctx, h.config.Group, stream, h.buffer, token)
	if err != nil {
		return err
	}
	if result == nil {
		return &streamlog.DeliveryError{Reason: "empty append response"}
	}
	if result.Rejected != nil {
		rejected := result.Rejected
		if h.config.DropOnReject {
			h.buffer = nil
			h.size = 0
		}
		return &streamlog.DeliveryError{Reason: "events rejected by service", Rejected: rejected}
	}

	h.buffer = nil
	h.size = 0
	return nil
}

// Close attempts one final flush and then releases the handler's state
// whether or not the flush succeeded. A closed handler rejects further
// emits with streamlog.ErrHandlerClosed. Close is idempotent.
func (h *Handler) Close() error {
	if h.closed {
		return nil
	}
	err := h.Flush(context.Background())
	h.buffer = nil
	h.size = 0
	h.closed = true
	return err
}

// Len returns the number of buffered events. Useful for callers that
// implement their own drain policy after a DeliveryError.
func (h *Handler) Len() int {
	return len(h.buffer)
}

// Size returns the buffered batch's byte size, including per-event overhead.
func (h *Handler) Size() int {
	return h.size
}

// Verify that Handler implements the Sink interface at compile time
var _ streamlog.Sink = (*Handler)(nil)
