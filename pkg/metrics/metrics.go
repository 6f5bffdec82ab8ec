// Package metrics defines the instrumentation hooks used by the
// notification client, without tying it to a metrics backend.
// See package prom for the Prometheus implementation.
package metrics

// Recorder receives decode outcomes. Implementations must be safe for
// concurrent use and must not block.
type Recorder interface {
	// NotificationDecoded counts a successful decode, labeled by type name.
	NotificationDecoded(kind string)

	// DecodeFailed counts a failed decode, labeled by failure reason.
	DecodeFailed(reason string)

	// HandlerPanicked counts a handler that panicked while processing a
	// notification.
	HandlerPanicked()
}

// Failure reasons.
const (
	ReasonUnknownMessage = "unknown_message"
	ReasonUnknownKind    = "unknown_kind"
	ReasonShortBuffer    = "short_buffer"
	ReasonUnresolved     = "unresolved_string"
	ReasonOther          = "other"
)

// Nop discards everything.
type Nop struct{}

func (Nop) NotificationDecoded(string) {}
func (Nop) DecodeFailed(string)        {}
func (Nop) HandlerPanicked()           {}

var _ Recorder = Nop{}
