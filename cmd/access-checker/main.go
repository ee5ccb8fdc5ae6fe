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
	os.Exit(NewAccessCheckCommand().Main(context.Background(), os.Args[1:]))
}

// AccessCheckCommand reports whether the current user can read, write, and
// execute a path.
type AccessCheckCommand struct {
	// Path to probe.
	Path string

	// If true, a failed probe causes Run to return an error.
	Strict bool

	Config cli.Config
	OS     fusesandbox.OS

	Stdout io.Writer
	Stderr io.Writer
}

// NewAccessCheckCommand returns a new instance of AccessCheckCommand.
func NewAccessCheckCommand() *AccessCheckCommand {
	return &AccessCheckCommand{
		Config: cli.NewConfig(),
		OS:     &internal.SystemOS{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Usage is the error text returned when the argument count is wrong.
const Usage = "Usage: access-checker [arguments] <path>"

// Main parses args, runs the command, and returns the process exit code.
// Errors are printed to Stderr. Help output is already printed by the flag set.
func (c *AccessCheckCommand) Main(ctx context.Context, args []string) int {
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

// ParseFlags parses the command line flags & config file.
func (c *AccessCheckCommand) ParseFlags(ctx context.Context, args []string) (err error) {
	var flags cli.Flags
	fs := flag.NewFlagSet("access-checker", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	flags.Register(fs)
	strict := fs.Bool("strict", false, "exit non-zero if any probe fails")
	fs.Usage = func() {
		fmt.Fprintln(c.Stderr, `
The access-checker command asks the kernel whether the current user may read,
write, and execute PATH. All three probes always run. The answers are advisory:
the file may change before it is actually used.

Usage:

	access-checker [arguments] PATH

Use "--" before a PATH that begins with a dash.

Arguments:
`[1:])
		fs.PrintDefaults()
		fmt.Fprintln(c.Stderr, "")
	}
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() != 1 {
		return &fusesandbox.UsageError{Usage: Usage}
	}

	c.Path = fs.Arg(0)

	if err := flags.Apply(ctx, &c.Config, c.Stdout, c.Stderr); err != nil {
		return err
	}
	c.Strict = *strict || c.Config.Access.Strict

	return nil
}

// Run executes the command.
func (c *AccessCheckCommand) Run(ctx context.Context) (err error) {
	defer func() {
		if e := cli.WriteMetrics(c.Config.Metrics.Path); err == nil {
			err = e
		}
	}()

	var failed int
	results := fusesandbox.CheckAccess(c.OS, c.Path)
	for _, r := range results {
		if !r.OK() {
			failed++
			fmt.Fprintf(c.Stderr, "Access denied (%s): %s\n", r.Probe, r.Err)
			continue
		}
		fmt.Fprintf(c.Stdout, "The user has %s access to the file.\n", r.Probe)
	}

	if c.Strict && failed > 0 {
		return fmt.Errorf("%d of %d access probes failed", failed, len(results))
	}
	return nil
}
