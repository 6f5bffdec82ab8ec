package notification

import "encoding/binary"

// MessageID identifies the kind of a notification record.
type MessageID uint32

// Host message ids.
const (
	MsgSetupChanged           MessageID = 1
	MsgObjectAdded            MessageID = 2
	MsgObjectRemoved          MessageID = 3
	MsgPropertyChanged        MessageID = 4
	MsgThruConnectionsChanged MessageID = 5
	MsgSerialPortOwnerChanged MessageID = 6
	MsgIOError                MessageID = 7
)

// String returns the message id name.
func (id MessageID) String() string {
	switch id {
	case MsgSetupChanged:
		return "SETUP_CHANGED"
	case MsgObjectAdded:
		return "OBJECT_ADDED"
	case MsgObjectRemoved:
		return "OBJECT_REMOVED"
	case MsgPropertyChanged:
		return "PROPERTY_CHANGED"
	case MsgThruConnectionsChanged:
		return "THRU_CONNECTIONS_CHANGED"
	case MsgSerialPortOwnerChanged:
		return "SERIAL_PORT_OWNER_CHANGED"
	case MsgIOError:
		return "IO_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Known reports whether the id is one of the host message ids.
func (id MessageID) Known() bool {
	return id >= MsgSetupChanged && id <= MsgIOError
}

// MessageIDs returns all known message ids in ascending order.
func MessageIDs() []MessageID {
	return []MessageID{
		MsgSetupChanged,
		MsgObjectAdded,
		MsgObjectRemoved,
		MsgPropertyChanged,
		MsgThruConnectionsChanged,
		MsgSerialPortOwnerChanged,
		MsgIOError,
	}
}

// ByteOrder is the host byte order for all record fields.
var ByteOrder = binary.LittleEndian

// Record sizes and field offsets.
const (
	HeaderSize = 8

	offMessageID   = 0
	offMessageSize = 4

	// Object added / removed.
	AddRemoveSize = 24
	offParent     = 8
	offParentType = 12
	offChild      = 16
	offChildType  = 20

	// Property changed. The name reference is pointer sized and 8-byte aligned.
	PropertyChangeSize = 24
	offObject          = 8
	offObjectType      = 12
	offPropertyName    = 16

	// I/O error.
	IOErrorSize     = 16
	offDriverDevice = 8
	offErrorCode    = 12
)

// payloadSize returns the fixed record size for ids that carry a payload,
// or 0 for header-only messages.
func payloadSize(id MessageID) int {
	switch id {
	case MsgObjectAdded, MsgObjectRemoved:
		return AddRemoveSize
	case MsgPropertyChanged:
		return PropertyChangeSize
	case MsgIOError:
		return IOErrorSize
	default:
		return 0
	}
}

func readU32(b []byte, off int) uint32 {
	return ByteOrder.Uint32(b[off : off+4])
}

func readI32(b []byte, off int) int32 {
	return int32(ByteOrder.Uint32(b[off : off+4]))
}

func readU64(b []byte, off int) uint64 {
	return ByteOrder.Uint64(b[off : off+8])
}
