package object

import "fmt"

// Ref is an opaque handle to a host object. The zero value refers to no object.
type Ref uint32

// String formats the handle in hex, the way the host prints object refs.
func (r Ref) String() string {
	return fmt.Sprintf("Object(%x)", uint32(r))
}

// Device is a handle known to refer to a device, such as the driver device
// of an I/O error.
type Device struct {
	Ref Ref
}

// String formats the device handle.
func (d Device) String() string {
	return fmt.Sprintf("Device(%x)", uint32(d.Ref))
}
