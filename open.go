package fusesandbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OpenFile opens path with the flags derived from mode and closes it again.
// The file is created with DefaultPerm if the mode allows creation.
func OpenFile(fsys OS, path string, mode Mode) (err error) {
	if !mode.IsValid() {
		return &InvalidModeError{Mode: string(mode)}
	}

	flag := mode.Flag()
	defer func() {
		TraceLog.Printf("[OpenFile(%s)]: mode=%s flag=%s %s", path, mode, FormatFlag(flag), errorKeyValue(err))
	}()

	f, err := fsys.OpenFile("OPENFILE", path, flag, DefaultPerm)
	if err != nil {
		openCountMetricVec.WithLabelValues(string(mode), "open_error").Inc()
		return &OpenError{Path: path, Err: reason(err)}
	}

	if err := f.Close(); err != nil {
		openCountMetricVec.WithLabelValues(string(mode), "close_error").Inc()
		return &CloseError{Path: path, Err: reason(err)}
	}

	openCountMetricVec.WithLabelValues(string(mode), "ok").Inc()
	return nil
}

var openCountMetricVec = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
	Name: "fusesandbox_open_count",
	Help: "Number of open/close attempts by mode and result.",
}, []string{"mode", "result"})
