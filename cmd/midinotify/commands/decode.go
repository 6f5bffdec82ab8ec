package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/notification"
)

// ParseHex decodes a hex record, ignoring whitespace and an optional 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, fmt.Errorf("empty record")
	}
	return hex.DecodeString(s)
}

// ParseStringBinding parses a "ref=value" host string binding.
func ParseStringBinding(s string) (hoststring.Ref, string, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid string binding %q (want ref=value)", s)
	}
	ref, err := strconv.ParseUint(k, 0, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid string reference %q: %w", k, err)
	}
	return hoststring.Ref(ref), v, nil
}

// RunDecode decodes a single hex record and writes the result to w.
// A record that fails to decode is reported on w and returned as the error.
func RunDecode(record string, bindings []string, w io.Writer) error {
	strs := hoststring.NewTable()
	for _, b := range bindings {
		ref, val, err := ParseStringBinding(b)
		if err != nil {
			return err
		}
		strs.Put(ref, val)
	}

	buf, err := ParseHex(record)
	if err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	n, err := notification.Decode(buf, strs)
	if err != nil {
		FormatDecodeError(w, err)
		return err
	}
	FormatNotification(w, n)
	return nil
}
