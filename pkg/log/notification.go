package log

import (
	"github.com/midinotify/midinotify-go/pkg/notification"
)

// FromNotification flattens a decoded notification for capture.
func FromNotification(n notification.Notification) *NotificationEvent {
	ev := &NotificationEvent{Type: n.MessageID().String()}

	switch v := n.(type) {
	case notification.ObjectAdded:
		fillAddRemove(ev, v.AddedRemovedInfo)
	case notification.ObjectRemoved:
		fillAddRemove(ev, v.AddedRemovedInfo)
	case notification.PropertyChanged:
		ev.Object = ptr(uint32(v.Object))
		ev.ObjectType = v.ObjectType.String()
		ev.PropertyName = v.PropertyName
	case notification.IOError:
		ev.DriverDevice = ptr(uint32(v.DriverDevice.Ref))
		ev.ErrorCode = ptr(v.ErrorCode)
	}
	return ev
}

func fillAddRemove(ev *NotificationEvent, info notification.AddedRemovedInfo) {
	ev.Parent = ptr(uint32(info.Parent))
	ev.ParentType = info.ParentType.String()
	ev.Child = ptr(uint32(info.Child))
	ev.ChildType = info.ChildType.String()
}

func ptr[T any](v T) *T {
	return &v
}
