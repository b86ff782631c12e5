package logsapi

import (
	"time"

	"github.com/logferry/logferry-go/pkg/streamlog"
)

// Config holds client configuration
type Config struct {
	// ServerURL is the base URL of the aggregation service's HTTP API
	// (e.g., "https://logs.example.com")
	ServerURL string

	// ClientID identifies this writer in the service bearer token
	ClientID string

	// SigningKey is the shared HMAC key used to mint service bearer
	// tokens. Leave empty to send unauthenticated requests (development
	// servers).
	SigningKey string

	// Timeout for HTTP requests
	Timeout time.Duration
}

// SetDefaults sets reasonable default values for the config
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}

// Wire types for the aggregation service's JSON API. Field names follow the
// service's conventions (groupName, uploadSequenceToken, nextToken, ...).

type describeGroupsRequest struct {
	GroupNamePrefix string `json:"groupNamePrefix"`
	NextToken       string `json:"nextToken,omitempty"`
}

type describeGroupsResponse struct {
	Groups    []groupMeta `json:"groups"`
	NextToken string      `json:"nextToken,omitempty"`
}

type groupMeta struct {
	GroupName       string `json:"groupName"`
	RetentionInDays int    `json:"retentionInDays,omitempty"`
}

type createGroupRequest struct {
	GroupName string `json:"groupName"`
}

type putRetentionRequest struct {
	RetentionInDays int `json:"retentionInDays"`
}

type describeStreamsRequest struct {
	StreamNamePrefix string `json:"streamNamePrefix"`
	NextToken        string `json:"nextToken,omitempty"`
}

type describeStreamsResponse struct {
	Streams   []streamMeta `json:"streams"`
	NextToken string       `json:"nextToken,omitempty"`
}

type streamMeta struct {
	StreamName          string `json:"streamName"`
	UploadSequenceToken string `json:"uploadSequenceToken,omitempty"`
}

type createStreamRequest struct {
	StreamName string `json:"streamName"`
}

type putEventsRequest struct {
	Events        []streamlog.Event `json:"events"`
	SequenceToken string            `json:"sequenceToken"`
}

type putEventsResponse struct {
	NextSequenceToken  string              `json:"nextSequenceToken,omitempty"`
	RejectedEventsInfo *rejectedEventsInfo `json:"rejectedEventsInfo,omitempty"`
}

type rejectedEventsInfo struct {
	TooNewLogEventStartIndex *int `json:"tooNewLogEventStartIndex,omitempty"`
	TooOldLogEventEndIndex   *int `json:"tooOldLogEventEndIndex,omitempty"`
	ExpiredLogEventEndIndex  *int `json:"expiredLogEventEndIndex,omitempty"`
}

// toRejected converts the wire shape to the model type, substituting -1 for
// absent indexes.
func (r *rejectedEventsInfo) toRejected() *streamlog.RejectedEvents {
	rejected := &streamlog.RejectedEvents{
		TooNewStartIndex: -1,
		TooOldEndIndex:   -1,
		ExpiredEndIndex:  -1,
	}
	if r.TooNewLogEventStartIndex != nil {
		rejected.TooNewStartIndex = *r.TooNewLogEventStartIndex
	}
	if r.TooOldLogEventEndIndex != nil {
		rejected.TooOldEndIndex = *r.TooOldLogEventEndIndex
	}
	if r.ExpiredLogEventEndIndex != nil {
		rejected.ExpiredEndIndex = *r.ExpiredLogEventEndIndex
	}
	return rejected
}

// errorResponse represents an error response body
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
