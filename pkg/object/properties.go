package object

import "errors"

// Property keys defined by the host.
const (
	PropertyName         = "name"
	PropertyModel        = "model"
	PropertyManufacturer = "manufacturer"
	PropertyUniqueID     = "uniqueID"
	PropertyOffline      = "offline"
	PropertyDisplayName  = "displayName"
)

// ErrPropertyNotFound is returned by Properties implementations when the
// object has no property with the requested name.
var ErrPropertyNotFound = errors.New("property not found")

// Properties is the host's property API for live objects.
// Implementations must be safe for concurrent use.
type Properties interface {
	// String returns a string-typed property.
	String(ref Ref, name string) (string, error)

	// SetString sets a string-typed property.
	SetString(ref Ref, name, value string) error

	// Integer returns an integer-typed property.
	Integer(ref Ref, name string) (int32, error)

	// SetInteger sets an integer-typed property.
	SetInteger(ref Ref, name string, value int32) error

	// TypeCode returns the raw host type code of the object.
	TypeCode(ref Ref) (int32, error)
}

// Boolean reads a boolean property. The host stores booleans as integers,
// any non-zero value is true.
func Boolean(p Properties, ref Ref, name string) (bool, error) {
	v, err := p.Integer(ref, name)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetBoolean writes a boolean property as 0 or 1.
func SetBoolean(p Properties, ref Ref, name string, value bool) error {
	var v int32
	if value {
		v = 1
	}
	return p.SetInteger(ref, name, v)
}

// Classify returns the kind of a live object.
func Classify(p Properties, ref Ref) (Kind, error) {
	code, err := p.TypeCode(ref)
	if err != nil {
		return 0, err
	}
	return DecodeKind(code)
}

// Name returns the object's name, if it has one.
func Name(p Properties, ref Ref) (string, bool) {
	return optionalString(p, ref, PropertyName)
}

// Manufacturer returns the object's manufacturer, if set.
func Manufacturer(p Properties, ref Ref) (string, bool) {
	return optionalString(p, ref, PropertyManufacturer)
}

// DisplayName returns the object's display name, if set.
func DisplayName(p Properties, ref Ref) (string, bool) {
	return optionalString(p, ref, PropertyDisplayName)
}

// UniqueID returns the object's unique id. The host stores it as a signed
// integer; it is reinterpreted as unsigned.
func UniqueID(p Properties, ref Ref) (uint32, bool) {
	v, err := p.Integer(ref, PropertyUniqueID)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// Offline reports the offline state of the object.
func Offline(p Properties, ref Ref) (bool, error) {
	return Boolean(p, ref, PropertyOffline)
}

func optionalString(p Properties, ref Ref, name string) (string, bool) {
	v, err := p.String(ref, name)
	if err != nil {
		return "", false
	}
	return v, true
}
