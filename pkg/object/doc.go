// Package object models the host's MIDI object graph as seen by clients.
//
// Objects are referenced by opaque [Ref] handles. A handle carries no
// ownership: it is a plain number that is only meaningful while the host
// keeps the object alive. Copy and compare handles freely.
//
// # Object Kinds
//
// The host classifies every object with an integer type code. [DecodeKind]
// is the single conversion boundary from those codes to [Kind]:
//
//	kind, err := object.DecodeKind(code)
//	if err != nil {
//	    var uk *object.UnknownKindError
//	    errors.As(err, &uk) // uk.Code == code
//	}
//
// # Properties
//
// Property access (name, unique id, offline state, ...) is provided by the
// host through the [Properties] interface. This package only defines the
// contract and a few typed lookups on top of it.
package object
