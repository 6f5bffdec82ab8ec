package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/midinotify/midinotify-go/pkg/hoststring"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// Session holds the state of an interactive decode session.
type Session struct {
	strs *hoststring.Table
	out  io.Writer
}

// NewSession creates a session writing to out.
func NewSession(out io.Writer) *Session {
	return &Session{strs: hoststring.NewTable(), out: out}
}

// Exec runs one input line. It returns false when the session should end.
func (s *Session) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	switch strings.ToLower(parts[0]) {
	case "help", "?":
		s.printHelp()
	case "str":
		s.cmdStr(parts[1:])
	case "kind":
		s.cmdKind(parts[1:])
	case "quit", "exit", "q":
		return false
	default:
		s.cmdDecode(input)
	}
	return true
}

func (s *Session) cmdStr(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: str <ref>=<value> | str <value>")
		return
	}
	binding := strings.Join(args, " ")
	if strings.Contains(args[0], "=") {
		ref, val, err := ParseStringBinding(binding)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		s.strs.Put(ref, val)
		fmt.Fprintf(s.out, "string %d = %q\n", ref, val)
		return
	}
	ref := s.strs.Intern(binding)
	fmt.Fprintf(s.out, "string %d = %q\n", ref, binding)
}

func (s *Session) cmdKind(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: kind <code>")
		return
	}
	v, err := strconv.ParseInt(args[0], 0, 32)
	if err != nil {
		fmt.Fprintf(s.out, "Error: invalid code %q\n", args[0])
		return
	}
	code := int32(v)
	kind, err := object.DecodeKind(code)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%d = %s\n", code, kind)
}

func (s *Session) cmdDecode(input string) {
	buf, err := ParseHex(input)
	if err != nil {
		fmt.Fprintf(s.out, "Unknown command or invalid hex: %s (type 'help' for commands)\n", input)
		return
	}
	n, err := notification.Decode(buf, s.strs)
	if err != nil {
		FormatDecodeError(s.out, err)
		return
	}
	FormatNotification(s.out, n)
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `
midinotify interactive decoder:
  <hex>              - Decode a notification record
  str <ref>=<value>  - Bind a host string reference
  str <value>        - Intern a string and print its reference
  kind <code>        - Decode an object type code
  help               - Show this help
  quit               - Exit`)
}

// RunInteractive runs a readline prompt until EOF or quit.
func RunInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "midinotify> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	s := NewSession(rl.Stdout())
	s.printHelp()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}
		if !s.Exec(line) {
			return nil
		}
	}
}
