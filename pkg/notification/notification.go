package notification

import (
	"fmt"

	"github.com/midinotify/midinotify-go/pkg/object"
)

// Notification is a decoded host notification.
// The set of implementations is closed; switch on the concrete type.
type Notification interface {
	// MessageID returns the host message id the notification was decoded from.
	MessageID() MessageID

	isNotification()
}

// AddedRemovedInfo describes an object being attached to or detached from a parent.
type AddedRemovedInfo struct {
	Parent     object.Ref
	ParentType object.Kind
	Child      object.Ref
	ChildType  object.Kind
}

// PropertyChangedInfo describes a property change on an object.
type PropertyChangedInfo struct {
	Object       object.Ref
	ObjectType   object.Kind
	PropertyName string
}

// IOErrorInfo describes a driver I/O failure.
type IOErrorInfo struct {
	DriverDevice object.Device
	ErrorCode    int32
}

// SetupChanged signals that some aspect of the current setup changed.
type SetupChanged struct{}

// ObjectAdded signals that a child object was added to a parent.
type ObjectAdded struct{ AddedRemovedInfo }

// ObjectRemoved signals that a child object was removed from a parent.
type ObjectRemoved struct{ AddedRemovedInfo }

// PropertyChanged signals that an object's property changed.
type PropertyChanged struct{ PropertyChangedInfo }

// ThruConnectionsChanged signals a change to the system's thru connections.
type ThruConnectionsChanged struct{}

// SerialPortOwnerChanged signals a change of serial port ownership.
type SerialPortOwnerChanged struct{}

// IOError signals a driver I/O error.
type IOError struct{ IOErrorInfo }

func (SetupChanged) MessageID() MessageID           { return MsgSetupChanged }
func (ObjectAdded) MessageID() MessageID            { return MsgObjectAdded }
func (ObjectRemoved) MessageID() MessageID          { return MsgObjectRemoved }
func (PropertyChanged) MessageID() MessageID        { return MsgPropertyChanged }
func (ThruConnectionsChanged) MessageID() MessageID { return MsgThruConnectionsChanged }
func (SerialPortOwnerChanged) MessageID() MessageID { return MsgSerialPortOwnerChanged }
func (IOError) MessageID() MessageID                { return MsgIOError }

func (SetupChanged) isNotification()           {}
func (ObjectAdded) isNotification()            {}
func (ObjectRemoved) isNotification()          {}
func (PropertyChanged) isNotification()        {}
func (ThruConnectionsChanged) isNotification() {}
func (SerialPortOwnerChanged) isNotification() {}
func (IOError) isNotification()                {}

func (SetupChanged) String() string { return "SetupChanged" }

func (n ObjectAdded) String() string {
	return "ObjectAdded" + n.AddedRemovedInfo.String()
}

func (n ObjectRemoved) String() string {
	return "ObjectRemoved" + n.AddedRemovedInfo.String()
}

func (n PropertyChanged) String() string {
	return fmt.Sprintf("PropertyChanged{object=%s type=%s property=%q}",
		n.Object, n.ObjectType, n.PropertyName)
}

func (ThruConnectionsChanged) String() string { return "ThruConnectionsChanged" }

func (SerialPortOwnerChanged) String() string { return "SerialPortOwnerChanged" }

func (n IOError) String() string {
	return fmt.Sprintf("IOError{driver=%s code=%d}", n.DriverDevice, n.ErrorCode)
}

// String formats the parent/child pair.
func (i AddedRemovedInfo) String() string {
	return fmt.Sprintf("{parent=%s parentType=%s child=%s childType=%s}",
		i.Parent, i.ParentType, i.Child, i.ChildType)
}

// Compile-time interface satisfaction checks.
var (
	_ Notification = SetupChanged{}
	_ Notification = ObjectAdded{}
	_ Notification = ObjectRemoved{}
	_ Notification = PropertyChanged{}
	_ Notification = ThruConnectionsChanged{}
	_ Notification = SerialPortOwnerChanged{}
	_ Notification = IOError{}
)
