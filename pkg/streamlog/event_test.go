package streamlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Size(t *testing.T) {
	assert.Equal(t, EventOverheadBytes, Event{}.Size())
	assert.Equal(t, 5+EventOverheadBytes, Event{Message: "hello"}.Size())
	// Size counts encoded bytes, not runes.
	assert.Equal(t, 6+EventOverheadBytes, Event{Message: "héllo"}.Size())
}

func TestDefaultStreamName(t *testing.T) {
	at := time.Date(2026, 8, 28, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2026-08-28", DefaultStreamName(at))
	assert.Equal(t, "2026-08-29", DefaultStreamName(at.Add(time.Second)))
}

func TestRejectedEvents_String(t *testing.T) {
	r := &RejectedEvents{TooNewStartIndex: 3, TooOldEndIndex: -1, ExpiredEndIndex: -1}
	assert.Equal(t, "tooNewStartIndex=3 tooOldEndIndex=-1 expiredEndIndex=-1", r.String())
}
