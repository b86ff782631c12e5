package shipper

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// SlogOptions configures a SlogHandler.
type SlogOptions struct {
	// Level is the minimum record level the handler forwards. Defaults to
	// slog.LevelInfo.
	Level slog.Leveler
}

// SlogHandler adapts a Handler to the log/slog.Handler interface, so the
// shipper plugs into the standard structured-logging pipeline as a sink.
// Attrs are rendered into the message as space-separated key=value pairs,
// with group names dot-joined into the keys.
//
// slog handlers must be safe for concurrent use, so SlogHandler serializes
// access to the underlying Handler with a mutex shared by all clones
// produced via WithAttrs and WithGroup.
type SlogHandler struct {
	mu    *sync.Mutex
	sink  *Handler
	level slog.Leveler

	// preformatted holds attrs accumulated via WithAttrs, already rendered
	// with their group prefix.
	preformatted []string
	groups       []string
}

// NewSlogHandler wraps a Handler for use with log/slog.
func NewSlogHandler(h *Handler, opts *SlogOptions) *SlogHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &SlogHandler{
		mu:    &sync.Mutex{},
		sink:  h,
		level: level,
	}
}

// Enabled reports whether records at the given level are forwarded.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level.Level()
}

// Handle renders the record and buffers it in the underlying Handler.
func (s *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, attr := range s.preformatted {
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	prefix := strings.Join(s.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Emit(ctx, streamlog.Record{
		Time:    t,
		Level:   r.Level,
		Message: b.String(),
	})
}

// WithAttrs returns a handler whose records carry the given attrs.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	clone := *s
	prefix := strings.Join(s.groups, ".")
	clone.preformatted = make([]string, 0, len(s.preformatted)+len(attrs))
	clone.preformatted = append(clone.preformatted, s.preformatted...)
	for _, a := range attrs {
		var b strings.Builder
		writeAttr(&b, prefix, a)
		clone.preformatted = append(clone.preformatted, strings.TrimPrefix(b.String(), " "))
	}
	return &clone
}

// WithGroup returns a handler that qualifies subsequent attr keys with name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	clone := *s
	clone.groups = make([]string, 0, len(s.groups)+1)
	clone.groups = append(clone.groups, s.groups...)
	clone.groups = append(clone.groups, name)
	return &clone
}

// Flush delivers the buffered batch now.
func (s *SlogHandler) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Flush(ctx)
}

// Close flushes and releases the underlying Handler.
func (s *SlogHandler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.Close()
}

// writeAttr renders one attr as " key=value", expanding group-valued attrs
// recursively.
func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(a.Value.String())
}

// Verify that SlogHandler implements the slog.Handler interface at compile time
var _ slog.Handler = (*SlogHandler)(nil)
