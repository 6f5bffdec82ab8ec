package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/notification"
)

// FormatNotification writes a one-line description of n.
func FormatNotification(w io.Writer, n notification.Notification) {
	fmt.Fprintf(w, "%-26s %v\n", n.MessageID().String(), n)
}

// FormatDecodeError writes a one-line description of a decode failure.
func FormatDecodeError(w io.Writer, err error) {
	code, _ := notification.ErrorCode(err)
	fmt.Fprintf(w, "%-26s code=%d %v\n", "ERROR", code, err)
}

// formatEvent writes a human-readable capture event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")

	label := "Unknown"
	switch {
	case event.Notification != nil:
		label = event.Notification.Type
	case event.StateChange != nil:
		label = "State"
	case event.Error != nil:
		label = "Error"
	}

	fmt.Fprintf(w, "%s [session:%s] %s %s\n", ts, shortenID(event.SessionID), event.Category, label)

	switch {
	case event.Notification != nil:
		formatNotificationDetails(w, event.Notification)
	case event.StateChange != nil:
		fmt.Fprintf(w, "  %s -> %s\n", event.StateChange.OldState, event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", event.StateChange.Reason)
		}
	case event.Error != nil:
		fmt.Fprintf(w, "  Code: %d\n", event.Error.Code)
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	if event.Frame != nil {
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(event.Frame.Data))
			if event.Frame.Truncated {
				fmt.Fprint(w, " (truncated)")
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
}

func formatNotificationDetails(w io.Writer, n *log.NotificationEvent) {
	if n.Parent != nil {
		fmt.Fprintf(w, "  Parent: %d (%s)\n", *n.Parent, n.ParentType)
	}
	if n.Child != nil {
		fmt.Fprintf(w, "  Child: %d (%s)\n", *n.Child, n.ChildType)
	}
	if n.Object != nil {
		fmt.Fprintf(w, "  Object: %d (%s)\n", *n.Object, n.ObjectType)
		fmt.Fprintf(w, "  Property: %s\n", n.PropertyName)
	}
	if n.DriverDevice != nil {
		fmt.Fprintf(w, "  Driver: %d\n", *n.DriverDevice)
	}
	if n.ErrorCode != nil {
		fmt.Fprintf(w, "  Status: %d\n", *n.ErrorCode)
	}
}

func shortenID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
