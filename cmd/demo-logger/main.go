package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"github.com/Argor57/fuseSandbox/internal"
	"github.com/Argor57/fuseSandbox/internal/cli"
)

func main() {
	log.SetFlags(0)
	os.Exit(NewLogCommand().Main(context.Background(), os.Args[1:]))
}

// LogCommand appends a fixed line to the demo log file.
type LogCommand struct {
	// Resolved log file path. Set by ParseFlags.
	Path string

	// Looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	Config cli.Config
	OS     fusesandbox.OS

	Stdout io.Writer
	Stderr io.Writer
}

// NewLogCommand returns a new instance of LogCommand.
func NewLogCommand() *LogCommand {
	return &LogCommand{
		Getenv: os.Getenv,
		Config: cli.NewConfig(),
		OS:     &internal.SystemOS{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Main parses args, runs the command, and returns the process exit code.
// Errors are printed to Stderr. Help output is already printed by the flag set.
func (c *LogCommand) Main(ctx context.Context, args []string) int {
	if err := c.ParseFlags(ctx, args); err == flag.ErrHelp {
		return 1
	} else if err != nil {
		fmt.Fprintln(c.Stderr, err)
		return 1
	}

	if err := c.Run(ctx); err != nil {
		fmt.Fprintln(c.Stderr, err)
		return 1
	}
	return 0
}

// ParseFlags parses the command line flags & config file and resolves the
// log path from the environment.
func (c *LogCommand) ParseFlags(ctx context.Context, args []string) (err error) {
	var flags cli.Flags
	fs := flag.NewFlagSet("demo-logger", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	flags.Register(fs)
	fs.Usage = func() {
		fmt.Fprintf(c.Stderr, `
The demo-logger command appends a single line to a log file. The file is taken
from the %s environment variable, then the "log.path" config setting, and
finally defaults to %s. Positional arguments are ignored.

Usage:

	demo-logger [arguments]

Arguments:
`[1:], fusesandbox.LogPathEnv, fusesandbox.DefaultLogPath)
		fs.PrintDefaults()
		fmt.Fprintln(c.Stderr, "")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := flags.Apply(ctx, &c.Config, c.Stdout, c.Stderr); err != nil {
		return err
	}

	c.Path, _ = c.Config.ResolveLogPath(c.Getenv)
	return nil
}

// Run executes the command.
func (c *LogCommand) Run(ctx context.Context) (err error) {
	defer func() {
		if e := cli.WriteMetrics(c.Config.Metrics.Path); err == nil {
			err = e
		}
	}()

	return fusesandbox.AppendLog(c.OS, c.Path)
}
