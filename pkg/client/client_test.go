package client

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/metrics"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

type fakeSource struct {
	fn           func([]byte)
	subscribeErr error
	unsubscribed int
}

func (s *fakeSource) Subscribe(fn func([]byte)) (func(), error) {
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	s.fn = fn
	return func() {
		s.fn = nil
		s.unsubscribed++
	}, nil
}

func (s *fakeSource) deliver(t *testing.T, buf []byte) {
	t.Helper()
	require.NotNil(t, s.fn, "not subscribed")
	s.fn(buf)
}

type stubRecorder struct{ mock.Mock }

func (r *stubRecorder) NotificationDecoded(kind string) { r.Called(kind) }
func (r *stubRecorder) DecodeFailed(reason string)      { r.Called(reason) }
func (r *stubRecorder) HandlerPanicked()                { r.Called() }

type captureRecorder struct {
	events []log.Event
}

func (c *captureRecorder) Log(e log.Event) { c.events = append(c.events, e) }

func record(t *testing.T, m interface{ MarshalBinary() ([]byte, error) }) []byte {
	t.Helper()
	b, err := m.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestNewRequiresSource(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestSessionIDIsUUID(t *testing.T) {
	c, err := New(Config{Source: &fakeSource{}})
	require.NoError(t, err)
	_, err = uuid.Parse(c.SessionID())
	assert.NoError(t, err)
}

func TestStartStop(t *testing.T) {
	src := &fakeSource{}
	capture := &captureRecorder{}
	c, err := New(Config{Source: src, Capture: capture})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Stop(), ErrNotStarted)
	require.NoError(t, c.Start())
	assert.True(t, c.Running())
	assert.ErrorIs(t, c.Start(), ErrAlreadyStarted)

	require.NoError(t, c.Stop())
	assert.False(t, c.Running())
	assert.Equal(t, 1, src.unsubscribed)

	require.Len(t, capture.events, 2)
	assert.Equal(t, log.CategoryState, capture.events[0].Category)
	assert.Equal(t, "RUNNING", capture.events[0].StateChange.NewState)
	assert.Equal(t, "STOPPED", capture.events[1].StateChange.NewState)
}

func TestStartSubscribeError(t *testing.T) {
	boom := errors.New("boom")
	c, err := New(Config{Source: &fakeSource{subscribeErr: boom}})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Start(), boom)
	assert.False(t, c.Running())
}

func TestDispatchInRegistrationOrder(t *testing.T) {
	src := &fakeSource{}
	c, err := New(Config{Source: src})
	require.NoError(t, err)

	var calls []string
	c.OnNotification(func(notification.Notification) { calls = append(calls, "first") })
	c.OnNotification(func(notification.Notification) { calls = append(calls, "second") })
	require.NoError(t, c.Start())

	src.deliver(t, record(t, notification.RawHeader{MessageID: notification.MsgSetupChanged}))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestHandleDecodedNotification(t *testing.T) {
	src := &fakeSource{}
	strs := hoststring.NewTable()
	capture := &captureRecorder{}
	rec := &stubRecorder{}
	rec.On("NotificationDecoded", "PROPERTY_CHANGED").Return().Once()

	c, err := New(Config{Source: src, Strings: strs, Capture: capture, Metrics: rec})
	require.NoError(t, err)

	var got notification.Notification
	c.OnNotification(func(n notification.Notification) { got = n })
	c.OnError(func(err error) { t.Errorf("unexpected error: %v", err) })
	require.NoError(t, c.Start())
	capture.events = nil

	src.deliver(t, record(t, notification.RawPropertyChange{
		MessageID:    notification.MsgPropertyChanged,
		Object:       1,
		ObjectType:   object.CodeDevice,
		PropertyName: strs.Intern("name"),
	}))

	assert.Equal(t, notification.PropertyChanged{PropertyChangedInfo: notification.PropertyChangedInfo{
		Object: 1, ObjectType: object.KindDevice, PropertyName: "name",
	}}, got)
	rec.AssertExpectations(t)

	require.Len(t, capture.events, 1)
	ev := capture.events[0]
	assert.Equal(t, log.CategoryNotification, ev.Category)
	assert.Equal(t, c.SessionID(), ev.SessionID)
	assert.Equal(t, uint32(notification.MsgPropertyChanged), ev.MessageID)
	require.NotNil(t, ev.Notification)
	assert.Equal(t, "name", ev.Notification.PropertyName)
	require.NotNil(t, ev.Frame)
	assert.Equal(t, notification.PropertyChangeSize, ev.Frame.Size)

	handled, failed := c.Stats()
	assert.Equal(t, uint64(1), handled)
	assert.Equal(t, uint64(0), failed)
}

func TestHandleDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		code   int32
		reason string
	}{
		{
			name:   "unknown message",
			buf:    []byte{0xff, 0xff, 0, 0, 8, 0, 0, 0},
			code:   0xffff,
			reason: metrics.ReasonUnknownMessage,
		},
		{
			name: "unknown kind",
			buf: func() []byte {
				b, _ := notification.RawAddRemove{
					MessageID: notification.MsgObjectAdded, ParentType: object.CodeDevice, ChildType: 0xffff,
				}.MarshalBinary()
				return b
			}(),
			code:   int32(notification.MsgObjectAdded),
			reason: metrics.ReasonUnknownKind,
		},
		{
			name:   "short buffer",
			buf:    []byte{7, 0, 0, 0, 16, 0, 0, 0, 1},
			code:   int32(notification.MsgIOError),
			reason: metrics.ReasonShortBuffer,
		},
		{
			name: "unresolved name",
			buf: func() []byte {
				b, _ := notification.RawPropertyChange{
					MessageID: notification.MsgPropertyChanged, ObjectType: object.CodeSource, PropertyName: 77,
				}.MarshalBinary()
				return b
			}(),
			code:   int32(notification.MsgPropertyChanged),
			reason: metrics.ReasonUnresolved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{}
			capture := &captureRecorder{}
			rec := &stubRecorder{}
			rec.On("DecodeFailed", tt.reason).Return().Once()

			c, err := New(Config{Source: src, Strings: hoststring.NewTable(), Capture: capture, Metrics: rec})
			require.NoError(t, err)

			var gotErr error
			c.OnNotification(func(n notification.Notification) { t.Errorf("unexpected notification %v", n) })
			c.OnError(func(err error) { gotErr = err })
			require.NoError(t, c.Start())
			capture.events = nil

			src.deliver(t, tt.buf)

			code, ok := notification.ErrorCode(gotErr)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
			rec.AssertExpectations(t)

			require.Len(t, capture.events, 1)
			ev := capture.events[0]
			assert.Equal(t, log.CategoryError, ev.Category)
			require.NotNil(t, ev.Error)
			assert.Equal(t, tt.code, ev.Error.Code)
			assert.Equal(t, tt.reason, ev.Error.Context)

			_, failed := c.Stats()
			assert.Equal(t, uint64(1), failed)
		})
	}
}

func TestHandlerPanicIsContained(t *testing.T) {
	src := &fakeSource{}
	rec := &stubRecorder{}
	rec.On("NotificationDecoded", mock.Anything).Return()
	rec.On("HandlerPanicked").Return().Once()

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(Config{Source: src, Metrics: rec, Logger: logger})
	require.NoError(t, err)

	reached := false
	c.OnNotification(func(notification.Notification) { panic("handler bug") })
	c.OnNotification(func(notification.Notification) { reached = true })
	require.NoError(t, c.Start())

	assert.NotPanics(t, func() {
		src.deliver(t, record(t, notification.RawHeader{MessageID: notification.MsgThruConnectionsChanged}))
	})
	assert.True(t, reached)
	rec.AssertExpectations(t)
	assert.Contains(t, logBuf.String(), "handler bug")
}

func TestHandleWithoutStart(t *testing.T) {
	c, err := New(Config{Source: &fakeSource{}})
	require.NoError(t, err)

	var got notification.Notification
	c.OnNotification(func(n notification.Notification) { got = n })
	c.Handle([]byte{6, 0, 0, 0, 8, 0, 0, 0})
	assert.Equal(t, notification.SerialPortOwnerChanged{}, got)
}
