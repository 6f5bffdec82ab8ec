package notification

import (
	"fmt"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// The Raw* types mirror the host record layouts field for field. They are
// what a host (or a simulation of one) writes; Decode is the reverse.

// RawHeader is a header-only record.
type RawHeader struct {
	MessageID   MessageID
	MessageSize uint32
}

// RawAddRemove is an object added/removed record.
type RawAddRemove struct {
	MessageID   MessageID
	MessageSize uint32
	Parent      object.Ref
	ParentType  int32
	Child       object.Ref
	ChildType   int32
}

// RawPropertyChange is a property changed record.
type RawPropertyChange struct {
	MessageID    MessageID
	MessageSize  uint32
	Object       object.Ref
	ObjectType   int32
	PropertyName hoststring.Ref
}

// RawIOError is an I/O error record.
type RawIOError struct {
	MessageID    MessageID
	MessageSize  uint32
	DriverDevice object.Ref
	ErrorCode    int32
}

// MarshalBinary encodes the header. A zero MessageSize is written as HeaderSize.
func (r RawHeader) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	putHeader(buf, r.MessageID, r.MessageSize)
	return buf, nil
}

// MarshalBinary encodes the record. A zero MessageSize is written as AddRemoveSize.
func (r RawAddRemove) MarshalBinary() ([]byte, error) {
	buf := make([]byte, AddRemoveSize)
	putHeader(buf, r.MessageID, r.MessageSize)
	ByteOrder.PutUint32(buf[offParent:], uint32(r.Parent))
	ByteOrder.PutUint32(buf[offParentType:], uint32(r.ParentType))
	ByteOrder.PutUint32(buf[offChild:], uint32(r.Child))
	ByteOrder.PutUint32(buf[offChildType:], uint32(r.ChildType))
	return buf, nil
}

// MarshalBinary encodes the record. A zero MessageSize is written as PropertyChangeSize.
func (r RawPropertyChange) MarshalBinary() ([]byte, error) {
	buf := make([]byte, PropertyChangeSize)
	putHeader(buf, r.MessageID, r.MessageSize)
	ByteOrder.PutUint32(buf[offObject:], uint32(r.Object))
	ByteOrder.PutUint32(buf[offObjectType:], uint32(r.ObjectType))
	ByteOrder.PutUint64(buf[offPropertyName:], uint64(r.PropertyName))
	return buf, nil
}

// MarshalBinary encodes the record. A zero MessageSize is written as IOErrorSize.
func (r RawIOError) MarshalBinary() ([]byte, error) {
	buf := make([]byte, IOErrorSize)
	putHeader(buf, r.MessageID, r.MessageSize)
	ByteOrder.PutUint32(buf[offDriverDevice:], uint32(r.DriverDevice))
	ByteOrder.PutUint32(buf[offErrorCode:], uint32(r.ErrorCode))
	return buf, nil
}

func putHeader(buf []byte, id MessageID, size uint32) {
	if size == 0 {
		size = uint32(len(buf))
	}
	ByteOrder.PutUint32(buf[offMessageID:], uint32(id))
	ByteOrder.PutUint32(buf[offMessageSize:], size)
}

// Encode produces the host record for n. Property names are interned in
// strs so the record can reference them.
func Encode(n Notification, strs *hoststring.Table) ([]byte, error) {
	switch v := n.(type) {
	case SetupChanged, ThruConnectionsChanged, SerialPortOwnerChanged:
		return RawHeader{MessageID: n.MessageID()}.MarshalBinary()
	case ObjectAdded:
		return rawAddRemove(MsgObjectAdded, v.AddedRemovedInfo).MarshalBinary()
	case ObjectRemoved:
		return rawAddRemove(MsgObjectRemoved, v.AddedRemovedInfo).MarshalBinary()
	case PropertyChanged:
		if strs == nil {
			return nil, fmt.Errorf("encode %s: string table required", MsgPropertyChanged)
		}
		return RawPropertyChange{
			MessageID:    MsgPropertyChanged,
			Object:       v.Object,
			ObjectType:   v.ObjectType.Code(),
			PropertyName: strs.Intern(v.PropertyName),
		}.MarshalBinary()
	case IOError:
		return RawIOError{
			MessageID:    MsgIOError,
			DriverDevice: v.DriverDevice.Ref,
			ErrorCode:    v.ErrorCode,
		}.MarshalBinary()
	default:
		return nil, fmt.Errorf("encode: unsupported notification %T", n)
	}
}

func rawAddRemove(id MessageID, info AddedRemovedInfo) RawAddRemove {
	return RawAddRemove{
		MessageID:  id,
		Parent:     info.Parent,
		ParentType: info.ParentType.Code(),
		Child:      info.Child,
		ChildType:  info.ChildType.Code(),
	}
}
