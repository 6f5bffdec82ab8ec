package object

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKind(t *testing.T) {
	tests := []struct {
		code int32
		want Kind
	}{
		{CodeOther, KindOther},
		{CodeDevice, KindDevice},
		{CodeEntity, KindEntity},
		{CodeSource, KindSource},
		{CodeDestination, KindDestination},
		{CodeExternalDevice, KindExternalDevice},
		{CodeExternalEntity, KindExternalEntity},
		{CodeExternalSource, KindExternalSource},
		{CodeExternalDestination, KindExternalDestination},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := DecodeKind(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The codes are owned by the host ABI. Pin the raw values here so a change
// to the table shows up as a failing test.
func TestHostCodeValues(t *testing.T) {
	assert.Equal(t, int32(-1), CodeOther)
	assert.Equal(t, int32(0), CodeDevice)
	assert.Equal(t, int32(1), CodeEntity)
	assert.Equal(t, int32(2), CodeSource)
	assert.Equal(t, int32(3), CodeDestination)
	assert.Equal(t, int32(0x10), CodeExternalDevice)
	assert.Equal(t, int32(0x11), CodeExternalEntity)
	assert.Equal(t, int32(0x12), CodeExternalSource)
	assert.Equal(t, int32(0x13), CodeExternalDestination)
}

func TestDecodeKindIsBijection(t *testing.T) {
	seen := make(map[Kind]int32)
	for _, k := range Kinds() {
		code := k.Code()
		got, err := DecodeKind(code)
		require.NoError(t, err)
		assert.Equal(t, k, got)

		if prev, dup := seen[got]; dup {
			t.Fatalf("codes %d and %d both decode to %s", prev, code, got)
		}
		seen[got] = code
	}
	assert.Len(t, seen, 9)
}

func TestDecodeKindUnknown(t *testing.T) {
	for _, code := range []int32{0xffff, -2, 4, 0x0f, 0x14, 0x20} {
		_, err := DecodeKind(code)
		require.Error(t, err)

		var uk *UnknownKindError
		require.True(t, errors.As(err, &uk))
		assert.Equal(t, code, uk.Code)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "DEVICE", KindDevice.String())
	assert.Equal(t, "EXTERNAL_DESTINATION", KindExternalDestination.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("device")
	assert.Error(t, err)
}

func TestKindIsExternal(t *testing.T) {
	assert.False(t, KindDevice.IsExternal())
	assert.False(t, KindOther.IsExternal())
	assert.True(t, KindExternalDevice.IsExternal())
	assert.True(t, KindExternalDestination.IsExternal())
}

func TestRefString(t *testing.T) {
	assert.Equal(t, "Object(1f)", Ref(0x1f).String())
	assert.Equal(t, "Device(2)", Device{Ref: 2}.String())
}
