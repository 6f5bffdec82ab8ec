package commands

import (
	"path/filepath"
	"testing"

	"github.com/midinotify/midinotify-go/pkg/log"
)

// createTestLogFile writes events to a temporary capture file.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.mnlog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, event := range events {
		logger.Log(event)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

func u32(v uint32) *uint32 { return &v }
