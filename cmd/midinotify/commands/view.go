package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/notification"
)

// RunView prints the events of a capture file that match filter.
func RunView(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

// ParseCategoryFlag parses a category name (notification, error, state).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "notification", "n":
		return log.CategoryNotification, nil
	case "error", "e":
		return log.CategoryError, nil
	case "state", "s":
		return log.CategoryState, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (valid: notification, error, state)", s)
	}
}

// ParseMessageFlag parses a message id given as a number or a name such
// as object_added.
func ParseMessageFlag(s string) (uint32, error) {
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(v), nil
	}
	want := strings.ToUpper(s)
	for _, id := range notification.MessageIDs() {
		if id.String() == want {
			return uint32(id), nil
		}
	}
	return 0, fmt.Errorf("unknown message: %s", s)
}
