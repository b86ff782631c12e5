// Package streamlog provides the data model and contracts for shipping
// application log records to a remote log-aggregation service in batches.
//
// This package defines the core abstractions for the logferry shipper:
//   - Event: one timestamped message unit submitted to a remote stream
//   - Record: the log record shape consumed from the application side
//   - Formatter: renders a Record into the message string of an Event
//   - StreamClient: narrow interface over the remote group/stream lifecycle
//     and append API
//   - Sink: the handler contract (Emit, Flush, Close) a shipper exposes to
//     a logging pipeline
//
// The remote service imposes hard limits on a single append call, mirrored
// here as constants:
//
//   - The maximum batch size is 1,048,576 bytes, computed as the sum of all
//     event messages in UTF-8 plus 26 bytes of overhead per event.
//   - The maximum number of events in a batch is 10,000.
//   - Events in a batch must be in chronological order by timestamp and
//     cannot span more than 24 hours.
//   - No event may be more than 2 hours in the future, nor older than 14
//     days or the group's retention period.
//   - An append call carries a sequence token reflecting the stream's last
//     accepted write; a mismatch is a client error.
//
// The interfaces use Go idioms:
//   - context.Context on every operation that contacts the remote service
//   - io.Closer for resource cleanup
//   - Explicit error returns following Go conventions
//
// Example usage:
//
//	handler, err := shipper.New(ctx, client, shipper.Config{Group: "api"})
//	if err != nil {
//		return err
//	}
//	defer handler.Close()
//
//	err = handler.Emit(ctx, streamlog.Record{
//		Time:    time.Now(),
//		Level:   slog.LevelInfo,
//		Message: "request served",
//	})
package streamlog
