package fusesandbox

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slog"
)

// DefaultPerm is the permission used when a probe creates a file. The process
// umask is applied by the kernel.
const DefaultPerm = 0o666

// Demo log constants.
const (
	LogPathEnv     = "LOG_PATH"
	DefaultLogPath = "/home/vagrant/src/mountpoint/demo/log.txt"
	LogLine        = "ewww - Everything is fine\n"
)

// TraceLogFlags are the flags used by TraceLog when it is enabled.
const TraceLogFlags = log.LstdFlags | log.Lmicroseconds | log.LUTC

// TraceLog receives one line per OS call made by the probes. Discarded by default.
var TraceLog = log.New(io.Discard, "", TraceLogFlags)

// LogLevel is the level used by the slog handler installed by each command.
var LogLevel slog.LevelVar

// Registry holds the probe metrics. It is separate from the default registry
// so a textfile export only contains probe counters.
var Registry = prometheus.NewRegistry()

// OS represents the subset of operating system calls used by the probes.
// The op argument labels the call site for mocking & tracing.
type OS interface {
	Access(op, path string, mode uint32) error
	OpenFile(op, name string, flag int, perm os.FileMode) (File, error)
}

// File represents a handle returned from OS.OpenFile.
type File interface {
	io.Writer
	io.Closer
}

// UsageError is returned when a command is given an invalid argument count.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return e.Usage }

// InvalidModeError is returned when a mode label is not recognized.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("Invalid mode: %s\nModes: %s", e.Mode, ModeList())
}

// OpenError is returned when the OS refuses to open a path.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("error opening %s: %s", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// CloseError is returned when a successfully opened file cannot be closed.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("error closing %s: %s", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error { return e.Err }

// reason strips the path wrapping from an OS error so only the system
// reason (e.g. "permission denied") is reported.
func reason(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

// errorKeyValue returns a key/value pair of the error. Returns a blank string if err is empty.
func errorKeyValue(err error) string {
	if err == nil {
		return ""
	}
	return "err=" + err.Error()
}
