package log

import (
	"context"
	"log/slog"
)

// SlogAdapter prints capture events through an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter. A nil logger uses slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}
	if event.MessageID != 0 {
		attrs = append(attrs, slog.Uint64("msg_id", uint64(event.MessageID)))
	}
	if event.Frame != nil {
		attrs = append(attrs, slog.Int("frame_size", event.Frame.Size))
	}

	switch {
	case event.Notification != nil:
		n := event.Notification
		attrs = append(attrs, slog.String("type", n.Type))
		if n.Parent != nil {
			attrs = append(attrs,
				slog.Uint64("parent", uint64(*n.Parent)),
				slog.String("parent_type", n.ParentType),
			)
		}
		if n.Child != nil {
			attrs = append(attrs,
				slog.Uint64("child", uint64(*n.Child)),
				slog.String("child_type", n.ChildType),
			)
		}
		if n.Object != nil {
			attrs = append(attrs,
				slog.Uint64("object", uint64(*n.Object)),
				slog.String("object_type", n.ObjectType),
				slog.String("property", n.PropertyName),
			)
		}
		if n.DriverDevice != nil {
			attrs = append(attrs, slog.Uint64("driver_device", uint64(*n.DriverDevice)))
		}
		if n.ErrorCode != nil {
			attrs = append(attrs, slog.Int("io_error_code", int(*n.ErrorCode)))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.Int("error_code", int(event.Error.Code)),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
