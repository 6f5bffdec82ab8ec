package log

import "time"

// Event is one entry in a capture trace.
// Exactly one of Notification, StateChange and Error is set. Frame may
// accompany Notification or Error.
type Event struct {
	// Timestamp when the buffer was handled.
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the client session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"3,keyasint"`

	// MessageID is the host message id from the record header, 0 if the
	// header could not be read.
	MessageID uint32 `cbor:"4,keyasint,omitempty"`

	Frame        *FrameEvent        `cbor:"5,keyasint,omitempty"`
	Notification *NotificationEvent `cbor:"6,keyasint,omitempty"`
	StateChange  *StateChangeEvent  `cbor:"7,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"8,keyasint,omitempty"`
}

// Category classifies capture events.
type Category uint8

const (
	// CategoryNotification is a successfully decoded notification.
	CategoryNotification Category = 0
	// CategoryError is a buffer that failed to decode.
	CategoryError Category = 1
	// CategoryState is a client lifecycle change.
	CategoryState Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNotification:
		return "NOTIFICATION"
	case CategoryError:
		return "ERROR"
	case CategoryState:
		return "STATE"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent holds the raw record bytes.
type FrameEvent struct {
	// Size is the length of the delivered buffer.
	Size int `cbor:"1,keyasint"`

	// Data is the buffer contents, truncated to MaxFrameDataSize.
	Data []byte `cbor:"2,keyasint,omitempty"`

	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MaxFrameDataSize caps the raw bytes kept per event.
const MaxFrameDataSize = 1024

// NewFrameEvent copies buf into a FrameEvent, truncating large buffers.
func NewFrameEvent(buf []byte) *FrameEvent {
	n := len(buf)
	truncated := false
	if n > MaxFrameDataSize {
		n = MaxFrameDataSize
		truncated = true
	}
	data := make([]byte, n)
	copy(data, buf)
	return &FrameEvent{Size: len(buf), Data: data, Truncated: truncated}
}

// NotificationEvent is a flattened decoded notification. Fields that do
// not apply to the notification type are omitted.
type NotificationEvent struct {
	// Type is the notification type name, e.g. OBJECT_ADDED.
	Type string `cbor:"1,keyasint"`

	Parent     *uint32 `cbor:"2,keyasint,omitempty"`
	ParentType string  `cbor:"3,keyasint,omitempty"`
	Child      *uint32 `cbor:"4,keyasint,omitempty"`
	ChildType  string  `cbor:"5,keyasint,omitempty"`

	Object       *uint32 `cbor:"6,keyasint,omitempty"`
	ObjectType   string  `cbor:"7,keyasint,omitempty"`
	PropertyName string  `cbor:"8,keyasint,omitempty"`

	DriverDevice *uint32 `cbor:"9,keyasint,omitempty"`
	ErrorCode    *int32  `cbor:"10,keyasint,omitempty"`
}

// StateChangeEvent records a client lifecycle transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData records a failed decode.
type ErrorEventData struct {
	// Code is the integer error signal from the decoder.
	Code int32 `cbor:"1,keyasint"`

	// Message is the error text.
	Message string `cbor:"2,keyasint"`

	// Context describes what was being done.
	Context string `cbor:"3,keyasint,omitempty"`
}
