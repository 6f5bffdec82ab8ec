package hostsim

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midinotify/midinotify-go/pkg/client"
	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// collect starts a client on h and returns the slices it appends to.
func collect(t *testing.T, h *Host) (*[]notification.Notification, *[]error) {
	t.Helper()
	var got []notification.Notification
	var errs []error

	c, err := client.New(client.Config{Source: h, Strings: h.Strings()})
	require.NoError(t, err)
	c.OnNotification(func(n notification.Notification) { got = append(got, n) })
	c.OnError(func(err error) { errs = append(errs, err) })
	require.NoError(t, c.Start())
	t.Cleanup(func() { _ = c.Stop() })
	return &got, &errs
}

func TestAddObjectAnnouncesChild(t *testing.T) {
	h := New()
	got, errs := collect(t, h)

	dev, err := h.AddObject(0, object.KindDevice, "Synth")
	require.NoError(t, err)
	ent, err := h.AddObject(dev, object.KindEntity, "Port 1")
	require.NoError(t, err)

	require.Empty(t, *errs)
	assert.Equal(t, []notification.Notification{
		notification.SetupChanged{},
		notification.ObjectAdded{AddedRemovedInfo: notification.AddedRemovedInfo{
			Parent: dev, ParentType: object.KindDevice, Child: ent, ChildType: object.KindEntity,
		}},
		notification.SetupChanged{},
	}, *got)
}

func TestAddObjectUnknownParent(t *testing.T) {
	h := New()
	_, err := h.AddObject(42, object.KindEntity, "orphan")
	assert.ErrorIs(t, err, ErrNoObject)
}

func TestRemoveObjectRemovesTree(t *testing.T) {
	h := New()
	dev, _ := h.AddObject(0, object.KindDevice, "Synth")
	ent, _ := h.AddObject(dev, object.KindEntity, "Port 1")
	_, _ = h.AddObject(ent, object.KindSource, "Out")
	require.Equal(t, 3, h.Objects())

	got, _ := collect(t, h)
	require.NoError(t, h.RemoveObject(ent))

	assert.Equal(t, 1, h.Objects())
	require.Len(t, *got, 2)
	assert.Equal(t, notification.ObjectRemoved{AddedRemovedInfo: notification.AddedRemovedInfo{
		Parent: dev, ParentType: object.KindDevice, Child: ent, ChildType: object.KindEntity,
	}}, (*got)[0])

	assert.ErrorIs(t, h.RemoveObject(ent), ErrNoObject)
}

func TestSetPropertyAnnouncesName(t *testing.T) {
	h := New()
	dev, _ := h.AddObject(0, object.KindExternalDevice, "Old")
	got, _ := collect(t, h)

	require.NoError(t, h.SetString(dev, object.PropertyName, "New"))
	require.NoError(t, object.SetBoolean(h, dev, object.PropertyOffline, true))

	assert.Equal(t, []notification.Notification{
		notification.PropertyChanged{PropertyChangedInfo: notification.PropertyChangedInfo{
			Object: dev, ObjectType: object.KindExternalDevice, PropertyName: object.PropertyName,
		}},
		notification.PropertyChanged{PropertyChangedInfo: notification.PropertyChangedInfo{
			Object: dev, ObjectType: object.KindExternalDevice, PropertyName: object.PropertyOffline,
		}},
	}, *got)

	// Name references only live for the delivery.
	assert.Equal(t, 0, h.Strings().Len())

	name, ok := object.Name(h, dev)
	require.True(t, ok)
	assert.Equal(t, "New", name)
	offline, err := object.Offline(h, dev)
	require.NoError(t, err)
	assert.True(t, offline)
}

func TestPropertiesOnHost(t *testing.T) {
	h := New()
	src, _ := h.AddObject(0, object.KindExternalSource, "Pad")

	kind, err := object.Classify(h, src)
	require.NoError(t, err)
	assert.Equal(t, object.KindExternalSource, kind)

	id, ok := object.UniqueID(h, src)
	assert.True(t, ok)
	assert.NotZero(t, id)

	_, ok = object.Manufacturer(h, src)
	assert.False(t, ok)

	_, err = h.String(99, object.PropertyName)
	assert.ErrorIs(t, err, ErrNoObject)
	_, err = h.Integer(src, "missing")
	assert.ErrorIs(t, err, object.ErrPropertyNotFound)
	assert.ErrorIs(t, h.SetInteger(99, "x", 1), ErrNoObject)
}

func TestIOErrorAndHeaderOnlyRecords(t *testing.T) {
	h := New()
	got, _ := collect(t, h)

	require.NoError(t, h.ReportIOError(5, -10830))
	require.NoError(t, h.ThruConnectionsChanged())
	require.NoError(t, h.SerialPortOwnerChanged())

	assert.Equal(t, []notification.Notification{
		notification.IOError{IOErrorInfo: notification.IOErrorInfo{DriverDevice: object.Device{Ref: 5}, ErrorCode: -10830}},
		notification.ThruConnectionsChanged{},
		notification.SerialPortOwnerChanged{},
	}, *got)
}

func TestEmitDeliversCopies(t *testing.T) {
	h := New()
	var first, second []byte
	unsub1, err := h.Subscribe(func(b []byte) { b[0] = 0xff; first = b })
	require.NoError(t, err)
	unsub2, err := h.Subscribe(func(b []byte) { second = b })
	require.NoError(t, err)

	h.Emit([]byte{1, 0, 0, 0, 8, 0, 0, 0})
	assert.Equal(t, byte(0xff), first[0])
	assert.Equal(t, byte(1), second[0])

	unsub1()
	unsub1()
	assert.Equal(t, 1, h.Subscribers())
	unsub2()
	assert.Equal(t, 0, h.Subscribers())

	_, err = h.Subscribe(nil)
	assert.Error(t, err)
}

func TestScriptRun(t *testing.T) {
	src := `
steps:
  - op: add
    id: dev
    kind: device
    name: Synth
  - op: add
    id: ent
    parent: dev
    kind: entity
    name: Port 1
  - op: set_string
    id: ent
    property: name
    value: Port A
  - op: set_integer
    id: dev
    property: offline
    int: 1
  - op: io_error
    id: dev
    code: 123
  - op: thru_changed
  - op: serial_owner_changed
  - op: raw
    hex: "ffff0000 08000000"
  - op: remove
    id: ent
`
	script, err := LoadScript(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, script.Steps, 9)

	h := New()
	got, errs := collect(t, h)
	require.NoError(t, script.Run(h))

	// setup, setup+added, prop, prop, io, thru, serial, removed+setup
	assert.Len(t, *got, 10)
	require.Len(t, *errs, 1)
	code, ok := notification.ErrorCode((*errs)[0])
	require.True(t, ok)
	assert.Equal(t, int32(0xffff), code)
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown op", "steps:\n  - op: explode\n"},
		{"unknown id", "steps:\n  - op: remove\n    id: nope\n"},
		{"bad kind", "steps:\n  - op: add\n    kind: widget\n"},
		{"bad hex", "steps:\n  - op: raw\n    hex: zz\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := LoadScript(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Error(t, script.Run(New()))
		})
	}
}

func TestLoadScriptRejectsUnknownFields(t *testing.T) {
	_, err := LoadScript(strings.NewReader("steps:\n  - op: add\n    colour: red\n"))
	assert.Error(t, err)

	s, err := LoadScript(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Steps)
}

func TestStringsTableIsResolver(t *testing.T) {
	var r hoststring.Resolver = New().Strings()
	_, err := r.Lookup(1)
	assert.True(t, errors.Is(err, hoststring.ErrUnresolved))
}
