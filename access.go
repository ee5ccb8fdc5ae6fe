package fusesandbox

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sys/unix"
)

// Probe represents a single capability query against a path.
type Probe int

// Capability probes, in the order CheckAccess runs them.
const (
	ProbeRead = Probe(iota)
	ProbeWrite
	ProbeExecute
)

// Probes returns all probes in evaluation order.
func Probes() []Probe {
	return []Probe{ProbeRead, ProbeWrite, ProbeExecute}
}

// AccessMode returns the access(2) mode bit for the probe.
func (p Probe) AccessMode() uint32 {
	switch p {
	case ProbeRead:
		return unix.R_OK
	case ProbeWrite:
		return unix.W_OK
	case ProbeExecute:
		return unix.X_OK
	default:
		return unix.F_OK
	}
}

// String returns the capability name used in output, e.g. "read".
func (p Probe) String() string {
	switch p {
	case ProbeRead:
		return "read"
	case ProbeWrite:
		return "write"
	case ProbeExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// ProbeResult is the outcome of a single probe. Err is nil if the capability
// is available and otherwise holds the reason reported by the OS.
type ProbeResult struct {
	Probe Probe
	Err   error
}

// OK returns true if the capability is available.
func (r ProbeResult) OK() bool { return r.Err == nil }

// CheckAccess runs every probe against path and returns the results in
// order. A failing probe never prevents the remaining probes from running.
//
// The results are advisory only. The file may change between the check and
// any later use, so callers must not treat them as an authorization decision.
func CheckAccess(fsys OS, path string) []ProbeResult {
	results := make([]ProbeResult, 0, 3)
	for _, p := range Probes() {
		err := fsys.Access("ACCESS", path, p.AccessMode())
		TraceLog.Printf("[Access(%s)]: probe=%s %s", path, p, errorKeyValue(err))

		result := "ok"
		if err != nil {
			result = "denied"
		}
		accessProbeCountMetricVec.WithLabelValues(p.String(), result).Inc()

		results = append(results, ProbeResult{Probe: p, Err: reason(err)})
	}
	return results
}

var accessProbeCountMetricVec = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
	Name: "fusesandbox_access_probe_count",
	Help: "Number of capability probes by probe and result.",
}, []string{"probe", "result"})
