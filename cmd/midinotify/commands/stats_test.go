package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/midinotify/midinotify-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	t0 := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []log.Event{
		{Timestamp: t0, SessionID: "a", Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "STOPPED", NewState: "RUNNING"}},
		{Timestamp: t0.Add(time.Second), SessionID: "a", Category: log.CategoryNotification, MessageID: 2,
			Notification: &log.NotificationEvent{Type: "OBJECT_ADDED"}},
		{Timestamp: t0.Add(2 * time.Second), SessionID: "a", Category: log.CategoryNotification, MessageID: 1,
			Notification: &log.NotificationEvent{Type: "SETUP_CHANGED"}},
		{Timestamp: t0.Add(3 * time.Second), SessionID: "b", Category: log.CategoryNotification, MessageID: 1,
			Notification: &log.NotificationEvent{Type: "SETUP_CHANGED"}},
		{Timestamp: t0.Add(4 * time.Second), SessionID: "b", Category: log.CategoryError, MessageID: 0xffff,
			Error: &log.ErrorEventData{Code: 0xffff, Message: "unknown"}},
	})

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if len(stats.Sessions) != 2 {
		t.Errorf("Sessions = %d, want 2", len(stats.Sessions))
	}
	if stats.EventsByCategory[log.CategoryNotification] != 3 {
		t.Errorf("notifications = %d, want 3", stats.EventsByCategory[log.CategoryNotification])
	}
	if stats.EventsByMessage[1] != 2 || stats.EventsByMessage[2] != 1 {
		t.Errorf("EventsByMessage = %v", stats.EventsByMessage)
	}
	if stats.ErrorsByCode[0xffff] != 1 {
		t.Errorf("ErrorsByCode = %v", stats.ErrorsByCode)
	}
	if !stats.TimeRange.Start.Equal(t0) || !stats.TimeRange.End.Equal(t0.Add(4*time.Second)) {
		t.Errorf("TimeRange = %v .. %v", stats.TimeRange.Start, stats.TimeRange.End)
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, []log.Event{
		{Timestamp: time.Now(), SessionID: "a", Category: log.CategoryNotification, MessageID: 7,
			Notification: &log.NotificationEvent{Type: "IO_ERROR"}},
	})

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Total Events: 1", "NOTIFICATION:", "IO_ERROR:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "Errors by Code") {
		t.Errorf("no errors expected, got: %s", output)
	}
}

func TestCollectStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}
	if stats.TotalEvents != 0 {
		t.Errorf("TotalEvents = %d, want 0", stats.TotalEvents)
	}
}
