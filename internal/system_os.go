package internal

import (
	"os"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"golang.org/x/sys/unix"
)

var _ fusesandbox.OS = (*SystemOS)(nil)

// SystemOS represents an implementation of OS that simply calls the os & unix package functions.
type SystemOS struct{}

func (*SystemOS) Access(op, path string, mode uint32) error {
	return unix.Access(path, mode)
}

func (*SystemOS) OpenFile(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err // avoid returning a typed nil
	}
	return f, nil
}
