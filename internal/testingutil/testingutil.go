package testingutil

import (
	"os"
	"testing"

	"github.com/Argor57/fuseSandbox/internal"
	"golang.org/x/sys/unix"
)

// SkipIfRoot skips the test when running as root since permission bits do
// not restrict root.
func SkipIfRoot(tb testing.TB) {
	tb.Helper()
	if internal.IsRoot() {
		tb.Skip("permission checks are bypassed for root")
	}
}

// Umask returns the current process umask without changing it.
func Umask(tb testing.TB) os.FileMode {
	tb.Helper()
	mask := unix.Umask(0)
	unix.Umask(mask)
	return os.FileMode(mask)
}

// MustWriteFile writes data to path with the given permissions.
func MustWriteFile(tb testing.TB, path string, data []byte, perm os.FileMode) {
	tb.Helper()
	if err := os.WriteFile(path, data, perm); err != nil {
		tb.Fatal(err)
	}

	// WriteFile honors the umask so set the exact bits afterward.
	if err := os.Chmod(path, perm); err != nil {
		tb.Fatal(err)
	}
}

// ReadFile returns the contents of path.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()
	buf, err := os.ReadFile(path)
	if err != nil {
		tb.Fatal(err)
	}
	return string(buf)
}
