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
	os.Exit(NewOpenCommand().Main(context.Background(), os.Args[1:]))
}

// OpenCommand opens a file in a given mode and immediately closes it.
type OpenCommand struct {
	// Path to open.
	Path string

	// Mode to open the file with.
	Mode fusesandbox.Mode

	Config cli.Config
	OS     fusesandbox.OS

	Stdout io.Writer
	Stderr io.Writer
}

// NewOpenCommand returns a new instance of OpenCommand.
func NewOpenCommand() *OpenCommand {
	return &OpenCommand{
		Config: cli.NewConfig(),
		OS:     &internal.SystemOS{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Usage is the error text returned when fewer than two arguments are given.
var Usage = "Usage: file-opener [arguments] <path> <mode>\nModes: " + fusesandbox.ModeList()

// Main parses args, runs the command, and returns the process exit code.
// Errors are printed to Stderr. Help output is already printed by the flag set.
func (c *OpenCommand) Main(ctx context.Context, args []string) int {
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
func (c *OpenCommand) ParseFlags(ctx context.Context, args []string) (err error) {
	var flags cli.Flags
	fs := flag.NewFlagSet("file-opener", flag.ContinueOnError)
	fs.SetOutput(c.Stderr)
	flags.Register(fs)
	fs.Usage = func() {
		fmt.Fprint(c.Stderr, `
The file-opener command opens PATH with the flags for MODE and closes it again.
Files are created with permission 0666, less the process umask.

	read       read-only
	write      write-only, create if missing, no truncation
	readwrite  read-write, create if missing
	append     write-only, create if missing, writes go to the end

Usage:

	file-opener [arguments] PATH MODE

Use "--" before a PATH that begins with a dash. Extra arguments are ignored.

Arguments:
`[1:])
		fs.PrintDefaults()
		fmt.Fprintln(c.Stderr, "")
	}
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() < 2 {
		return &fusesandbox.UsageError{Usage: Usage}
	}

	c.Path = fs.Arg(0)
	if c.Mode, err = fusesandbox.ParseMode(fs.Arg(1)); err != nil {
		return err
	}

	return flags.Apply(ctx, &c.Config, c.Stdout, c.Stderr)
}

// Run executes the command.
func (c *OpenCommand) Run(ctx context.Context) (err error) {
	defer func() {
		if e := cli.WriteMetrics(c.Config.Metrics.Path); err == nil {
			err = e
		}
	}()

	if err := fusesandbox.OpenFile(c.OS, c.Path, c.Mode); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout, "File successfully opened/created in mode '%s'\n", c.Mode)
	return nil
}
