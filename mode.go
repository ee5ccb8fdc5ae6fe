package fusesandbox

import (
	"os"
	"strings"
)

// Mode represents a semantic open mode label.
type Mode string

// Open mode labels.
const (
	ModeRead      = Mode("read")
	ModeWrite     = Mode("write")
	ModeReadWrite = Mode("readwrite")
	ModeAppend    = Mode("append")
)

// Modes returns the recognized modes in display order.
func Modes() []Mode {
	return []Mode{ModeRead, ModeWrite, ModeReadWrite, ModeAppend}
}

// ModeList returns the recognized modes as a comma-separated list.
func ModeList() string {
	a := make([]string, 0, 4)
	for _, m := range Modes() {
		a = append(a, string(m))
	}
	return strings.Join(a, ", ")
}

// ParseMode returns the mode for label s. Returns an InvalidModeError if s is
// not a recognized label.
func ParseMode(s string) (Mode, error) {
	if m := Mode(s); m.IsValid() {
		return m, nil
	}
	return "", &InvalidModeError{Mode: s}
}

// IsValid returns true if m is a recognized mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeRead, ModeWrite, ModeReadWrite, ModeAppend:
		return true
	default:
		return false
	}
}

// Flag returns the os.OpenFile flags for the mode. None of the modes
// truncate; "write" leaves existing content in place.
func (m Mode) Flag() int {
	switch m {
	case ModeRead:
		return os.O_RDONLY
	case ModeWrite:
		return os.O_WRONLY | os.O_CREATE
	case ModeReadWrite:
		return os.O_RDWR | os.O_CREATE
	case ModeAppend:
		return os.O_WRONLY | os.O_APPEND | os.O_CREATE
	default:
		return -1
	}
}

// FormatFlag returns a human readable form of an open flag set, e.g. "O_WRONLY|O_CREATE".
func FormatFlag(flag int) string {
	var a []string
	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_WRONLY:
		a = append(a, "O_WRONLY")
	case os.O_RDWR:
		a = append(a, "O_RDWR")
	default:
		a = append(a, "O_RDONLY")
	}

	for _, f := range []struct {
		flag int
		name string
	}{
		{os.O_APPEND, "O_APPEND"},
		{os.O_CREATE, "O_CREATE"},
		{os.O_EXCL, "O_EXCL"},
		{os.O_TRUNC, "O_TRUNC"},
		{os.O_SYNC, "O_SYNC"},
	} {
		if flag&f.flag != 0 {
			a = append(a, f.name)
		}
	}
	return strings.Join(a, "|")
}
