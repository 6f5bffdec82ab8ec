package notification

import (
	"fmt"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// Header is the common prefix of every notification record.
type Header struct {
	ID   MessageID
	Size uint32
}

// ReadHeader reads the record header from buf.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, &Error{
			Code: 0,
			Err:  fmt.Errorf("%w: header needs %d bytes, have %d", ErrShortBuffer, HeaderSize, len(buf)),
		}
	}
	return Header{
		ID:   MessageID(readU32(buf, offMessageID)),
		Size: readU32(buf, offMessageSize),
	}, nil
}

// Decode turns one host notification record into a Notification.
//
// strs resolves the property name reference of property-changed records and
// may be nil if the caller never expects them. The returned value does not
// alias buf or any host string.
func Decode(buf []byte, strs hoststring.Resolver) (Notification, error) {
	hdr, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	switch hdr.ID {
	case MsgSetupChanged:
		return SetupChanged{}, nil
	case MsgThruConnectionsChanged:
		return ThruConnectionsChanged{}, nil
	case MsgSerialPortOwnerChanged:
		return SerialPortOwnerChanged{}, nil
	case MsgObjectAdded, MsgObjectRemoved, MsgPropertyChanged, MsgIOError:
		// handled below
	default:
		return nil, &Error{
			Code: int32(hdr.ID),
			Err:  fmt.Errorf("%w: %d", ErrUnknownMessage, uint32(hdr.ID)),
		}
	}

	if err := checkBounds(hdr, buf); err != nil {
		return nil, err
	}

	switch hdr.ID {
	case MsgObjectAdded, MsgObjectRemoved:
		return decodeAddRemove(hdr.ID, buf)
	case MsgPropertyChanged:
		return decodePropertyChanged(buf, strs)
	default:
		return decodeIOError(buf), nil
	}
}

// checkBounds verifies that both the declared size and the actual buffer
// cover the fixed layout of the message.
func checkBounds(hdr Header, buf []byte) error {
	need := payloadSize(hdr.ID)
	if int(hdr.Size) < need {
		return decodeError(hdr.ID, fmt.Errorf("%w: %s declares %d bytes, layout needs %d",
			ErrShortBuffer, hdr.ID, hdr.Size, need))
	}
	if len(buf) < need || uint64(len(buf)) < uint64(hdr.Size) {
		return decodeError(hdr.ID, fmt.Errorf("%w: %s buffer has %d bytes, declared %d",
			ErrShortBuffer, hdr.ID, len(buf), hdr.Size))
	}
	return nil
}

func decodeAddRemove(id MessageID, buf []byte) (Notification, error) {
	parentType, err := object.DecodeKind(readI32(buf, offParentType))
	if err != nil {
		return nil, decodeError(id, fmt.Errorf("parent: %w", err))
	}
	childType, err := object.DecodeKind(readI32(buf, offChildType))
	if err != nil {
		return nil, decodeError(id, fmt.Errorf("child: %w", err))
	}

	info := AddedRemovedInfo{
		Parent:     object.Ref(readU32(buf, offParent)),
		ParentType: parentType,
		Child:      object.Ref(readU32(buf, offChild)),
		ChildType:  childType,
	}
	if id == MsgObjectAdded {
		return ObjectAdded{info}, nil
	}
	return ObjectRemoved{info}, nil
}

func decodePropertyChanged(buf []byte, strs hoststring.Resolver) (Notification, error) {
	objectType, err := object.DecodeKind(readI32(buf, offObjectType))
	if err != nil {
		return nil, decodeError(MsgPropertyChanged, err)
	}
	if strs == nil {
		return nil, decodeError(MsgPropertyChanged, fmt.Errorf("%w: no resolver", hoststring.ErrUnresolved))
	}

	name, err := hoststring.Copy(strs, hoststring.Ref(readU64(buf, offPropertyName)))
	if err != nil {
		return nil, decodeError(MsgPropertyChanged, fmt.Errorf("property name: %w", err))
	}

	return PropertyChanged{PropertyChangedInfo{
		Object:       object.Ref(readU32(buf, offObject)),
		ObjectType:   objectType,
		PropertyName: name,
	}}, nil
}

func decodeIOError(buf []byte) Notification {
	return IOError{IOErrorInfo{
		DriverDevice: object.Device{Ref: object.Ref(readU32(buf, offDriverDevice))},
		ErrorCode:    readI32(buf, offErrorCode),
	}}
}
