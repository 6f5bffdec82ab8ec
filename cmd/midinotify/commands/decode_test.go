package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/notification"
)

const (
	objectAddedHex     = "02000000 18000000 01000000 00000000 02000000 ffffffff"
	propertyChangedHex = "04000000 18000000 01000000 00000000 05000000 00000000"
	unknownMessageHex  = "ffff0000 08000000"
)

func TestParseHex(t *testing.T) {
	buf, err := ParseHex("0x0100 0000\n0800 0000")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 8, 0, 0, 0}, buf)

	_, err = ParseHex("  ")
	assert.Error(t, err)

	_, err = ParseHex("zz")
	assert.Error(t, err)
}

func TestParseStringBinding(t *testing.T) {
	ref, val, err := ParseStringBinding("0x10=Port A")
	require.NoError(t, err)
	assert.Equal(t, hoststring.Ref(16), ref)
	assert.Equal(t, "Port A", val)

	_, _, err = ParseStringBinding("name")
	assert.Error(t, err)

	_, _, err = ParseStringBinding("abc=name")
	assert.Error(t, err)
}

func TestRunDecodeObjectAdded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunDecode(objectAddedHex, nil, &buf))

	assert.Contains(t, buf.String(), "OBJECT_ADDED")
	assert.Contains(t, buf.String(),
		"ObjectAdded{parent=Object(1) parentType=DEVICE child=Object(2) childType=OTHER}")
}

func TestRunDecodePropertyChangedWithBinding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunDecode(propertyChangedHex, []string{"5=name"}, &buf))
	assert.Contains(t, buf.String(), `property="name"`)
}

func TestRunDecodeUnboundStringFails(t *testing.T) {
	var buf bytes.Buffer
	err := RunDecode(propertyChangedHex, nil, &buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, hoststring.ErrUnresolved))

	code, ok := notification.ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, int32(notification.MsgPropertyChanged), code)
	assert.Contains(t, buf.String(), "code=4")
}

func TestRunDecodeUnknownMessage(t *testing.T) {
	var buf bytes.Buffer
	err := RunDecode(unknownMessageHex, nil, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, notification.ErrUnknownMessage)
	assert.Contains(t, buf.String(), "code=65535")
}

func TestRunDecodeBadInput(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RunDecode("not hex", nil, &buf))
	assert.Error(t, RunDecode(objectAddedHex, []string{"bad"}, &buf))
	assert.Empty(t, buf.String())
}
