// Command midinotify decodes host MIDI notification records and analyzes
// notification capture files.
//
// Usage:
//
//	midinotify <command> [flags] [args]
//
// Commands:
//
//	decode       Decode a single hex record
//	interactive  Decode records typed at a prompt
//	simulate     Run a scripted host simulation through a client
//	view         View a capture file in human-readable format
//	export       Export a capture file to JSON or CSV format
//	filter       Filter a capture file and write to a new file
//	stats        Show statistics about a capture file
//
// Examples:
//
//	# Decode an ObjectAdded record
//	midinotify decode "02000000 18000000 01000000 00000000 02000000 ffffffff"
//
//	# Decode a PropertyChanged record with its name reference bound
//	midinotify decode -str 5=name "04000000 18000000 01000000 00000000 05000000 00000000"
//
//	# Run a simulation and capture it
//	midinotify simulate -config sim.yaml
//
//	# View only decode failures
//	midinotify view -category error session.mnlog
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/midinotify/midinotify-go/cmd/midinotify/commands"
)

const usage = `midinotify - MIDI host notification decoder

Usage:
  midinotify <command> [flags] [args]

Commands:
  decode       Decode a single hex record
  interactive  Decode records typed at a prompt
  simulate     Run a scripted host simulation through a client
  view         View a capture file in human-readable format
  export       Export a capture file to JSON or CSV format
  filter       Filter a capture file and write to a new file
  stats        Show statistics about a capture file

Use "midinotify <command> -help" for more information about a command.
`

// stringList collects repeated -str flags.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "decode":
		runDecode(args)
	case "interactive":
		runInteractive(args)
	case "simulate":
		runSimulate(args)
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify decode - Decode a single hex record

Usage:
  midinotify decode [flags] <hex>

Flags:
`)
		fs.PrintDefaults()
	}

	var bindings stringList
	fs.Var(&bindings, "str", "Bind a host string reference, ref=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: record required")
		fs.Usage()
		os.Exit(1)
	}

	record := strings.Join(fs.Args(), " ")
	if err := commands.RunDecode(record, bindings, os.Stdout); err != nil {
		os.Exit(1)
	}
}

func runInteractive(args []string) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := commands.RunInteractive(); err != nil {
		fail(err)
	}
}

func runSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify simulate - Run a scripted host simulation through a client

Usage:
  midinotify simulate -config <file.yaml>

Flags:
`)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Simulation config file (required)")
	capture := fs.String("capture", "", "Override the capture file path")
	metricsAddr := fs.String("metrics-addr", "", "Override the metrics listen address")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: config file (-config) required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := commands.LoadSimulateConfig(*configPath)
	if err != nil {
		fail(err)
	}
	if *capture != "" {
		cfg.Capture = *capture
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := commands.RunSimulate(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fail(err)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify view - View a capture file in human-readable format

Usage:
  midinotify view [flags] <file.mnlog>

Flags:
`)
		fs.PrintDefaults()
	}

	session := fs.String("session", "", "Filter by session ID")
	category := fs.String("category", "", "Filter by category (notification, error, state)")
	message := fs.String("message", "", "Filter by message id or name (e.g. object_added)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := commands.BuildFilter(commands.FilterOptions{
		SessionID: *session,
		Category:  *category,
		Message:   *message,
	})
	if err != nil {
		fail(err)
	}

	if err := commands.RunView(fs.Arg(0), filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify export - Export a capture file to JSON or CSV format

Usage:
  midinotify export [flags] <file.mnlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify filter - Filter a capture file and write to a new file

Usage:
  midinotify filter [flags] <file.mnlog>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	session := fs.String("session", "", "Filter by session ID")
	category := fs.String("category", "", "Filter by category (notification, error, state)")
	message := fs.String("message", "", "Filter by message id or name")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	count, err := commands.RunFilter(fs.Arg(0), commands.FilterOptions{
		Output:    *output,
		SessionID: *session,
		Category:  *category,
		Message:   *message,
		TimeStart: *timeStart,
		TimeEnd:   *timeEnd,
	})
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, *output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `midinotify stats - Show statistics about a capture file

Usage:
  midinotify stats <file.mnlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: capture file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fail(err)
	}
}
