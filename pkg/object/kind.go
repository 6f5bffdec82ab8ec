package object

import "fmt"

// Kind classifies a MIDI object.
type Kind uint8

const (
	KindOther Kind = iota
	KindDevice
	KindEntity
	KindSource
	KindDestination
	KindExternalDevice
	KindExternalEntity
	KindExternalSource
	KindExternalDestination
)

// Host object type codes. These mirror the host ABI and must match exactly.
const (
	CodeOther               int32 = -1
	CodeDevice              int32 = 0
	CodeEntity              int32 = 1
	CodeSource              int32 = 2
	CodeDestination         int32 = 3
	CodeExternalDevice      int32 = 0x10
	CodeExternalEntity      int32 = 0x11
	CodeExternalSource      int32 = 0x12
	CodeExternalDestination int32 = 0x13
)

// UnknownKindError reports an object type code outside the known set.
type UnknownKindError struct {
	Code int32
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown object type code %d", e.Code)
}

// DecodeKind maps a host object type code to a Kind.
// Unrecognized codes return an *UnknownKindError holding the code unchanged.
func DecodeKind(code int32) (Kind, error) {
	switch code {
	case CodeOther:
		return KindOther, nil
	case CodeDevice:
		return KindDevice, nil
	case CodeEntity:
		return KindEntity, nil
	case CodeSource:
		return KindSource, nil
	case CodeDestination:
		return KindDestination, nil
	case CodeExternalDevice:
		return KindExternalDevice, nil
	case CodeExternalEntity:
		return KindExternalEntity, nil
	case CodeExternalSource:
		return KindExternalSource, nil
	case CodeExternalDestination:
		return KindExternalDestination, nil
	default:
		return 0, &UnknownKindError{Code: code}
	}
}

// Code returns the host type code for the kind.
func (k Kind) Code() int32 {
	switch k {
	case KindOther:
		return CodeOther
	case KindDevice:
		return CodeDevice
	case KindEntity:
		return CodeEntity
	case KindSource:
		return CodeSource
	case KindDestination:
		return CodeDestination
	case KindExternalDevice:
		return CodeExternalDevice
	case KindExternalEntity:
		return CodeExternalEntity
	case KindExternalSource:
		return CodeExternalSource
	case KindExternalDestination:
		return CodeExternalDestination
	default:
		return CodeOther
	}
}

// IsExternal reports whether the kind describes an external (non-driver) object.
func (k Kind) IsExternal() bool {
	return k >= KindExternalDevice && k <= KindExternalDestination
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOther:
		return "OTHER"
	case KindDevice:
		return "DEVICE"
	case KindEntity:
		return "ENTITY"
	case KindSource:
		return "SOURCE"
	case KindDestination:
		return "DESTINATION"
	case KindExternalDevice:
		return "EXTERNAL_DEVICE"
	case KindExternalEntity:
		return "EXTERNAL_ENTITY"
	case KindExternalSource:
		return "EXTERNAL_SOURCE"
	case KindExternalDestination:
		return "EXTERNAL_DESTINATION"
	default:
		return "UNKNOWN"
	}
}

// ParseKind parses a kind name as produced by String. Matching is exact.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

// Kinds returns all kinds in host code order.
func Kinds() []Kind {
	return []Kind{
		KindOther,
		KindDevice,
		KindEntity,
		KindSource,
		KindDestination,
		KindExternalDevice,
		KindExternalEntity,
		KindExternalSource,
		KindExternalDestination,
	}
}
