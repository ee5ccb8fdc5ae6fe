// Package cli holds the flag, configuration, and logging plumbing shared by
// the probe binaries.
package cli

import (
	"context"
	"flag"
	"io"
	"log"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Flags represents the command line flags common to every binary.
type Flags struct {
	ConfigPath  string
	NoExpandEnv bool
	Verbose     bool
	Tracing     bool
}

// Register adds the common flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "config file path")
	fs.BoolVar(&f.NoExpandEnv, "no-expand-env", false, "do not expand env vars in config")
	fs.BoolVar(&f.Verbose, "v", false, "enable verbose logging")
	fs.BoolVar(&f.Tracing, "tracing", false, "enable trace logging to stdout")
}

// Apply reads the config file, if one was specified, and configures logging.
// It must only be called once argument validation has succeeded so that a
// usage error never touches the file system.
func (f *Flags) Apply(ctx context.Context, config *Config, stdout, stderr io.Writer) error {
	if f.Verbose {
		fusesandbox.LogLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: &fusesandbox.LogLevel})))

	if f.ConfigPath != "" {
		if err := ReadConfigFile(ctx, f.ConfigPath, !f.NoExpandEnv, config); err != nil {
			return err
		}
	}

	if w := TraceWriter(config.Tracing, f.Tracing, stdout); w != nil {
		fusesandbox.TraceLog.SetOutput(w)
	}
	return nil
}

// TraceWriter returns the destination for the trace log. The config settings
// specify a rolling on-disk log whereas the CLI flag specifies output to
// stdout. Returns nil if tracing is disabled.
func TraceWriter(config TracingConfig, tracing bool, stdout io.Writer) io.Writer {
	var tw io.Writer
	if config.Path != "" {
		log.Printf("trace log enabled: %s", config.Path)
		tw = &lumberjack.Logger{
			Filename:   config.Path,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxCount,
			Compress:   config.Compress,
		}
	}
	if tracing {
		if tw == nil {
			tw = stdout
		} else {
			tw = io.MultiWriter(stdout, tw)
		}
	}
	return tw
}

// WriteMetrics writes the probe metrics to path in the Prometheus text format
// so they can be picked up by a textfile collector. No-op if path is blank.
func WriteMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, fusesandbox.Registry); err != nil {
		return err
	}
	slog.Debug("metrics written", slog.String("path", path))
	return nil
}
