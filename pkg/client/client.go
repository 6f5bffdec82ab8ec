package client

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/metrics"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// Client errors.
var (
	ErrNoSource       = errors.New("client: source is required")
	ErrAlreadyStarted = errors.New("client: already started")
	ErrNotStarted     = errors.New("client: not started")
)

// Source is the host's notification registration mechanism.
type Source interface {
	// Subscribe registers fn to be called with each raw record. The buffer
	// is only valid for the duration of the call.
	Subscribe(fn func(buf []byte)) (unsubscribe func(), err error)
}

// Config configures a Client.
type Config struct {
	// Source delivers raw records. Required.
	Source Source

	// Strings resolves property name references. If nil, property-changed
	// records fail to decode.
	Strings hoststring.Resolver

	// Logger is the optional operational logger. If nil, logging is disabled.
	Logger *slog.Logger

	// Capture receives a trace event per record. Optional.
	Capture log.Logger

	// Metrics receives decode outcomes. Optional.
	Metrics metrics.Recorder
}

// NotificationHandler handles a decoded notification.
type NotificationHandler func(notification.Notification)

// ErrorHandler handles a record that failed to decode. The error is a
// *notification.Error.
type ErrorHandler func(error)

// Client decodes host notification records and dispatches them.
type Client struct {
	source    Source
	strings   hoststring.Resolver
	logger    *slog.Logger
	capture   log.Logger
	metrics   metrics.Recorder
	sessionID string

	mu          sync.RWMutex
	onNotify    []NotificationHandler
	onError     []ErrorHandler
	unsubscribe func()
	running     bool
	handled     uint64
	failed      uint64
}

// New creates a client. It does not subscribe until Start.
func New(cfg Config) (*Client, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}
	c := &Client{
		source:    cfg.Source,
		strings:   cfg.Strings,
		logger:    cfg.Logger,
		capture:   cfg.Capture,
		metrics:   cfg.Metrics,
		sessionID: uuid.NewString(),
	}
	if c.capture == nil {
		c.capture = log.NoopLogger{}
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop{}
	}
	return c, nil
}

// SessionID returns the id stamped on every capture event.
func (c *Client) SessionID() string {
	return c.sessionID
}

// OnNotification registers a handler for decoded notifications.
func (c *Client) OnNotification(h NotificationHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onNotify = append(c.onNotify, h)
}

// OnError registers a handler for records that fail to decode.
func (c *Client) OnError(h ErrorHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = append(c.onError, h)
}

// Start subscribes to the source.
func (c *Client) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	unsubscribe, err := c.source.Subscribe(c.Handle)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("client: subscribe: %w", err)
	}
	c.unsubscribe = unsubscribe
	c.running = true
	c.mu.Unlock()

	c.debugLog("client started", "session_id", c.sessionID)
	c.logState("STOPPED", "RUNNING", "")
	return nil
}

// Stop unsubscribes from the source.
func (c *Client) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return ErrNotStarted
	}
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.running = false
	handled, failed := c.handled, c.failed
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	c.debugLog("client stopped", "handled", handled, "failed", failed)
	c.logState("RUNNING", "STOPPED", "")
	return nil
}

// Running reports whether the client is subscribed.
func (c *Client) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Stats returns the number of records handled and how many failed to decode.
func (c *Client) Stats() (handled, failed uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handled, c.failed
}

// Handle decodes one raw record and dispatches the result. It is the
// callback passed to Source.Subscribe and may also be called directly.
func (c *Client) Handle(buf []byte) {
	now := time.Now()
	n, err := notification.Decode(buf, c.strings)

	c.mu.Lock()
	c.handled++
	if err != nil {
		c.failed++
	}
	notifyHandlers := c.onNotify
	errorHandlers := c.onError
	c.mu.Unlock()

	if err != nil {
		c.handleError(now, buf, err, errorHandlers)
		return
	}

	c.metrics.NotificationDecoded(n.MessageID().String())
	c.capture.Log(log.Event{
		Timestamp:    now,
		SessionID:    c.sessionID,
		Category:     log.CategoryNotification,
		MessageID:    uint32(n.MessageID()),
		Frame:        log.NewFrameEvent(buf),
		Notification: log.FromNotification(n),
	})

	for _, h := range notifyHandlers {
		c.invoke(func() { h(n) })
	}
}

func (c *Client) handleError(now time.Time, buf []byte, err error, handlers []ErrorHandler) {
	code, _ := notification.ErrorCode(err)
	reason := failureReason(err)

	c.metrics.DecodeFailed(reason)
	c.debugLog("notification decode failed", "code", code, "reason", reason, "size", len(buf), "error", err)

	var msgID uint32
	if hdr, herr := notification.ReadHeader(buf); herr == nil {
		msgID = uint32(hdr.ID)
	}
	c.capture.Log(log.Event{
		Timestamp: now,
		SessionID: c.sessionID,
		Category:  log.CategoryError,
		MessageID: msgID,
		Frame:     log.NewFrameEvent(buf),
		Error: &log.ErrorEventData{
			Code:    code,
			Message: err.Error(),
			Context: reason,
		},
	})

	for _, h := range handlers {
		c.invoke(func() { h(err) })
	}
}

// invoke runs a handler, containing panics so that one bad handler does
// not unwind into the host's delivery thread.
func (c *Client) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.HandlerPanicked()
			c.debugLog("notification handler panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

func (c *Client) logState(oldState, newState, reason string) {
	c.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (c *Client) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func failureReason(err error) string {
	var uk *object.UnknownKindError
	switch {
	case errors.Is(err, notification.ErrUnknownMessage):
		return metrics.ReasonUnknownMessage
	case errors.Is(err, notification.ErrShortBuffer):
		return metrics.ReasonShortBuffer
	case errors.As(err, &uk):
		return metrics.ReasonUnknownKind
	case errors.Is(err, hoststring.ErrUnresolved):
		return metrics.ReasonUnresolved
	default:
		return metrics.ReasonOther
	}
}
