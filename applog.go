package fusesandbox

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LogFileFlag is the flag set used to open the demo log file.
const LogFileFlag = os.O_WRONLY | os.O_APPEND | os.O_CREATE

// AppendLog appends LogLine to the file at path, creating it if needed.
// Existing content is never truncated. Write & close errors are reported so
// the caller knows the line was handed to the OS.
func AppendLog(fsys OS, path string) (err error) {
	defer func() {
		TraceLog.Printf("[AppendLog(%s)]: %s", path, errorKeyValue(err))
		if err != nil {
			logAppendCountMetricVec.WithLabelValues("error").Inc()
		} else {
			logAppendCountMetricVec.WithLabelValues("ok").Inc()
		}
	}()

	f, err := fsys.OpenFile("APPENDLOG", path, LogFileFlag, DefaultPerm)
	if err != nil {
		return &OpenError{Path: path, Err: reason(err)}
	}

	if _, err := io.WriteString(f, LogLine); err != nil {
		_ = f.Close()
		return fmt.Errorf("cannot write to %s: %w", path, reason(err))
	}

	if err := f.Close(); err != nil {
		return &CloseError{Path: path, Err: reason(err)}
	}
	return nil
}

var logAppendCountMetricVec = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
	Name: "fusesandbox_log_append_count",
	Help: "Number of demo log appends by result.",
}, []string{"result"})
