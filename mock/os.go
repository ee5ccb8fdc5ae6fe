package mock

import (
	"os"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"github.com/Argor57/fuseSandbox/internal"
)

var _ fusesandbox.OS = (*OS)(nil)

type OS struct {
	Underlying fusesandbox.OS

	AccessFunc   func(op, path string, mode uint32) error
	OpenFileFunc func(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error)
}

// NewOS returns a mock OS that defaults to using an underlying system OS.
func NewOS() *OS {
	return &OS{
		Underlying: &internal.SystemOS{},
	}
}

func (m *OS) Access(op, path string, mode uint32) error {
	if m.AccessFunc == nil {
		return m.Underlying.Access(op, path, mode)
	}
	return m.AccessFunc(op, path, mode)
}

func (m *OS) OpenFile(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error) {
	if m.OpenFileFunc == nil {
		return m.Underlying.OpenFile(op, name, flag, perm)
	}
	return m.OpenFileFunc(op, name, flag, perm)
}
