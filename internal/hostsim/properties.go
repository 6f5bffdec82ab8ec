package hostsim

import (
	"fmt"

	"github.com/midinotify/midinotify-go/pkg/object"
)

func (h *Host) lookup(ref object.Ref) (*entry, error) {
	e, ok := h.objects[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoObject, ref)
	}
	return e, nil
}

// String returns a string property.
func (h *Host) String(ref object.Ref, name string) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(ref)
	if err != nil {
		return "", err
	}
	v, ok := e.strings[name]
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", object.ErrPropertyNotFound, ref, name)
	}
	return v, nil
}

// SetString sets a string property and announces the change.
func (h *Host) SetString(ref object.Ref, name, value string) error {
	h.mu.Lock()
	e, err := h.lookup(ref)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	e.strings[name] = value
	kind := e.kind
	h.mu.Unlock()

	return h.propertyChanged(ref, kind, name)
}

// Integer returns an integer property.
func (h *Host) Integer(ref object.Ref, name string) (int32, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(ref)
	if err != nil {
		return 0, err
	}
	v, ok := e.ints[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", object.ErrPropertyNotFound, ref, name)
	}
	return v, nil
}

// SetInteger sets an integer property and announces the change.
func (h *Host) SetInteger(ref object.Ref, name string, value int32) error {
	h.mu.Lock()
	e, err := h.lookup(ref)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	e.ints[name] = value
	kind := e.kind
	h.mu.Unlock()

	return h.propertyChanged(ref, kind, name)
}

// TypeCode returns the host type code of the object.
func (h *Host) TypeCode(ref object.Ref) (int32, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, err := h.lookup(ref)
	if err != nil {
		return 0, err
	}
	return e.kind.Code(), nil
}

var _ object.Properties = (*Host)(nil)
