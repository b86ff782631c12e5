package streamlog

import (
	"fmt"
	"log/slog"
	"time"
)

// Record is the log record shape the shipper consumes from the application
// side: rendered content, a creation timestamp, and a severity usable for
// filtering upstream.
type Record struct {
	// Time is when the record was created. It becomes the event timestamp.
	Time time.Time

	// Level is the record's severity.
	Level slog.Level

	// Message is the record's content.
	Message string
}

// Formatter renders a Record into the message string of an Event.
// Implementations are injected into the shipper; the shipper itself never
// decides how a record reads.
type Formatter interface {
	Format(record Record) string
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(record Record) string

// Format calls f(record).
func (f FormatterFunc) Format(record Record) string {
	return f(record)
}

// TextFormatter is the default Formatter: "<RFC3339 time> <LEVEL> <message>".
type TextFormatter struct{}

// Format renders the record as a single line of text.
func (TextFormatter) Format(record Record) string {
	return fmt.Sprintf("%s %s %s",
		record.Time.Format(time.RFC3339),
		record.Level.String(),
		record.Message,
	)
}

// Verify interface conformance at compile time
var (
	_ Formatter = FormatterFunc(nil)
	_ Formatter = TextFormatter{}
)
