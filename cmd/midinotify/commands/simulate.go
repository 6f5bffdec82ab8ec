package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/midinotify/midinotify-go/internal/hostsim"
	"github.com/midinotify/midinotify-go/pkg/client"
	"github.com/midinotify/midinotify-go/pkg/log"
	"github.com/midinotify/midinotify-go/pkg/metrics/prom"
	"github.com/midinotify/midinotify-go/pkg/notification"
	"github.com/midinotify/midinotify-go/pkg/object"
)

// SimulateResult summarizes a simulation run.
type SimulateResult struct {
	SessionID string
	Handled   uint64
	Failed    uint64
}

// RunSimulate plays the configured script on a simulated host, printing
// every notification to out. Operational logs go to errOut.
func RunSimulate(ctx context.Context, cfg *SimulateConfig, out, errOut io.Writer) (*SimulateResult, error) {
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	var loggers []log.Logger
	var fileLogger *log.FileLogger
	if cfg.Capture != "" {
		fileLogger, err = log.NewFileLogger(cfg.Capture)
		if err != nil {
			return nil, fmt.Errorf("open capture file: %w", err)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	if cfg.CaptureConsole {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	reg := prometheus.NewRegistry()
	host := hostsim.New()

	c, err := client.New(client.Config{
		Source:  host,
		Strings: host.Strings(),
		Logger:  logger,
		Capture: log.NewMultiLogger(loggers...),
		Metrics: prom.NewRecorder(reg),
	})
	if err != nil {
		return nil, err
	}

	c.OnNotification(func(n notification.Notification) {
		FormatNotification(out, n)
		if pc, ok := n.(notification.PropertyChanged); ok {
			printPropertyValue(out, host, pc.PropertyChangedInfo)
		}
	})
	c.OnError(func(err error) {
		FormatDecodeError(out, err)
	})

	if err := c.Start(); err != nil {
		return nil, err
	}
	runErr := cfg.Script.Run(host)
	if err := c.Stop(); err != nil {
		return nil, err
	}

	handled, failed := c.Stats()
	res := &SimulateResult{SessionID: c.SessionID(), Handled: handled, Failed: failed}
	logger.Info("simulation finished", "session_id", res.SessionID, "handled", handled, "failed", failed)
	if runErr != nil {
		return res, runErr
	}

	if fileLogger != nil {
		if err := fileLogger.Flush(); err != nil {
			return res, fmt.Errorf("flush capture file: %w", err)
		}
	}

	if cfg.MetricsAddr != "" {
		if err := serveMetrics(ctx, cfg.MetricsAddr, reg, logger); err != nil {
			return res, err
		}
	}
	return res, nil
}

// printPropertyValue shows the new value by reading it back through the
// property API, as a client reacting to the notification would.
func printPropertyValue(w io.Writer, props object.Properties, info notification.PropertyChangedInfo) {
	if v, err := props.String(info.Object, info.PropertyName); err == nil {
		fmt.Fprintf(w, "%-26s %s = %q\n", "", info.PropertyName, v)
		return
	}
	if v, err := props.Integer(info.Object, info.PropertyName); err == nil {
		fmt.Fprintf(w, "%-26s %s = %d\n", "", info.PropertyName, v)
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving metrics", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
