// Package hostsim simulates the host MIDI services layer: an object graph
// with properties, a string allocator, and a notification center that
// delivers raw records to subscribers.
package hostsim

import (
	"encoding"
	"errors"
	"fmt"
	"sync"

	"github.com/midinotify/midinotify-go/pkg/client"
	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// ErrNoObject is returned for references that do not name a live object.
var ErrNoObject = errors.New("hostsim: no such object")

type entry struct {
	kind    object.Kind
	parent  object.Ref
	strings map[string]string
	ints    map[string]int32
}

// Host is an in-memory host. It is safe for concurrent use; records are
// delivered synchronously on the calling goroutine.
type Host struct {
	strs *hoststring.Table

	mu      sync.RWMutex
	objects map[object.Ref]*entry
	nextRef object.Ref
	subs    map[int]func([]byte)
	nextSub int
	order   []int
}

// New creates an empty host.
func New() *Host {
	return &Host{
		strs:    hoststring.NewTable(),
		objects: make(map[object.Ref]*entry),
		nextRef: 1,
		subs:    make(map[int]func([]byte)),
	}
}

// Strings returns the host string table used for property name references.
func (h *Host) Strings() *hoststring.Table {
	return h.strs
}

// Subscribe registers fn for every delivered record.
func (h *Host) Subscribe(fn func(buf []byte)) (func(), error) {
	if fn == nil {
		return nil, errors.New("hostsim: nil callback")
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	h.order = append(h.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(id) })
	}, nil
}

func (h *Host) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Subscribers returns the number of registered callbacks.
func (h *Host) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Emit delivers a raw record to all subscribers. Each subscriber gets its
// own copy so no callback can disturb another.
func (h *Host) Emit(buf []byte) {
	h.mu.RLock()
	fns := make([]func([]byte), 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		b := make([]byte, len(buf))
		copy(b, buf)
		fn(b)
	}
}

func (h *Host) emitRecord(m encoding.BinaryMarshaler) error {
	buf, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	h.Emit(buf)
	return nil
}

// AddObject creates an object under parent (0 for a root device) and
// announces it with ObjectAdded followed by SetupChanged.
func (h *Host) AddObject(parent object.Ref, kind object.Kind, name string) (object.Ref, error) {
	h.mu.Lock()
	var parentKind object.Kind
	if parent != 0 {
		p, ok := h.objects[parent]
		if !ok {
			h.mu.Unlock()
			return 0, fmt.Errorf("%w: parent %s", ErrNoObject, parent)
		}
		parentKind = p.kind
	}
	ref := h.nextRef
	h.nextRef++
	h.objects[ref] = &entry{
		kind:    kind,
		parent:  parent,
		strings: map[string]string{object.PropertyName: name},
		ints:    map[string]int32{object.PropertyUniqueID: int32(ref) * 7919},
	}
	h.mu.Unlock()

	if parent != 0 {
		if err := h.emitRecord(notification.RawAddRemove{
			MessageID:  notification.MsgObjectAdded,
			Parent:     parent,
			ParentType: parentKind.Code(),
			Child:      ref,
			ChildType:  kind.Code(),
		}); err != nil {
			return 0, err
		}
	}
	return ref, h.SetupChanged()
}

// RemoveObject deletes an object and its descendants and announces the
// removal of the object from its parent.
func (h *Host) RemoveObject(ref object.Ref) error {
	h.mu.Lock()
	e, ok := h.objects[ref]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoObject, ref)
	}
	var parentKind object.Kind
	if p, ok := h.objects[e.parent]; ok {
		parentKind = p.kind
	}
	h.removeTree(ref)
	h.mu.Unlock()

	if e.parent != 0 {
		if err := h.emitRecord(notification.RawAddRemove{
			MessageID:  notification.MsgObjectRemoved,
			Parent:     e.parent,
			ParentType: parentKind.Code(),
			Child:      ref,
			ChildType:  e.kind.Code(),
		}); err != nil {
			return err
		}
	}
	return h.SetupChanged()
}

// removeTree must be called with h.mu held.
func (h *Host) removeTree(ref object.Ref) {
	for r, e := range h.objects {
		if e.parent == ref {
			h.removeTree(r)
		}
	}
	delete(h.objects, ref)
}

// Objects returns the number of live objects.
func (h *Host) Objects() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.objects)
}

// SetupChanged announces a generic setup change.
func (h *Host) SetupChanged() error {
	return h.emitRecord(notification.RawHeader{MessageID: notification.MsgSetupChanged})
}

// ThruConnectionsChanged announces a thru connection change.
func (h *Host) ThruConnectionsChanged() error {
	return h.emitRecord(notification.RawHeader{MessageID: notification.MsgThruConnectionsChanged})
}

// SerialPortOwnerChanged announces a serial port ownership change.
func (h *Host) SerialPortOwnerChanged() error {
	return h.emitRecord(notification.RawHeader{MessageID: notification.MsgSerialPortOwnerChanged})
}

// ReportIOError announces a driver I/O error.
func (h *Host) ReportIOError(device object.Ref, code int32) error {
	return h.emitRecord(notification.RawIOError{
		MessageID:    notification.MsgIOError,
		DriverDevice: device,
		ErrorCode:    code,
	})
}

// propertyChanged interns the name only for the duration of delivery, the
// way the host's reference is only valid inside the callback.
func (h *Host) propertyChanged(ref object.Ref, kind object.Kind, name string) error {
	nameRef := h.strs.Intern(name)
	defer h.strs.Release(nameRef)

	return h.emitRecord(notification.RawPropertyChange{
		MessageID:    notification.MsgPropertyChanged,
		Object:       ref,
		ObjectType:   kind.Code(),
		PropertyName: nameRef,
	})
}

var _ client.Source = (*Host)(nil)
