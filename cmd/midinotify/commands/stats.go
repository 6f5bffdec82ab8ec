package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/notification"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	EventsByMessage  map[uint32]int
	ErrorsByCode     map[int32]int
	Sessions         map[string]int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// CollectStats reads the whole capture file.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		EventsByMessage:  make(map[uint32]int),
		ErrorsByCode:     make(map[int32]int),
		Sessions:         make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++
		stats.Sessions[event.SessionID]++
		if event.Notification != nil {
			stats.EventsByMessage[event.MessageID]++
		}
		if event.Error != nil {
			stats.ErrorsByCode[event.Error.Code]++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}
	}
	return stats, nil
}

// RunStats prints statistics for a capture file.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== MIDI Notification Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryNotification, log.CategoryError, log.CategoryState} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Notifications by Type:")
	for _, id := range notification.MessageIDs() {
		if count := stats.EventsByMessage[uint32(id)]; count > 0 {
			fmt.Fprintf(w, "  %-27s %d\n", id.String()+":", count)
		}
	}

	if len(stats.ErrorsByCode) > 0 {
		codes := make([]int32, 0, len(stats.ErrorsByCode))
		for code := range stats.ErrorsByCode {
			codes = append(codes, code)
		}
		sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by Code:")
		for _, code := range codes {
			fmt.Fprintf(w, "  %-14d %d\n", code, stats.ErrorsByCode[code])
		}
	}
}
