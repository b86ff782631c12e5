package streamlog

import (
	"errors"
	"fmt"
)

// ErrHandlerClosed is returned when a record is emitted to a closed handler.
var ErrHandlerClosed = errors.New("handler is closed")

// ConfigError reports invalid construction parameters. It is fatal to
// construction and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid config: " + e.Reason
}

// ProvisionError reports a client-side failure from a group/stream creation
// or retention-policy call. It is fatal to the triggering operation
// (construction or flush) and never retried internally.
type ProvisionError struct {
	// Op is the provisioning call that failed ("create group",
	// "set retention", "create stream").
	Op string

	// Name is the group or stream the call targeted.
	Name string

	// Status is the HTTP-style status code the service reported.
	Status int
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("%s %q failed with status %d", e.Op, e.Name, e.Status)
}

// DeliveryError reports an append call the shipper cannot treat as success:
// the service rejected events, or returned an empty response. The buffer is
// left intact on this path (unless the handler is configured to drop on
// reject) so the caller can retry or drain.
type DeliveryError struct {
	// Reason describes the failure.
	Reason string

	// Rejected carries the service's rejection detail when events were
	// refused; nil for an empty response.
	Rejected *RejectedEvents
}

func (e *DeliveryError) Error() string {
	if e.Rejected != nil {
		return fmt.Sprintf("delivery failed: %s: %s", e.Reason, e.Rejected)
	}
	return "delivery failed: " + e.Reason
}
