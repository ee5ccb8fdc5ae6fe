package internal

import "os"

// IsRoot returns true if the process runs with an effective uid of zero.
// Capability probes always succeed for root, except for execute on files
// without any execute bit.
func IsRoot() bool {
	return os.Geteuid() == 0
}
