package mock

import (
	fusesandbox "github.com/Argor57/fuseSandbox"
)

var _ fusesandbox.File = (*File)(nil)

// File is a mock file handle. Calls fall through to Underlying, if set,
// when the corresponding func field is nil.
type File struct {
	Underlying fusesandbox.File

	WriteFunc func(p []byte) (int, error)
	CloseFunc func() error
}

func (f *File) Write(p []byte) (int, error) {
	if f.WriteFunc == nil {
		if f.Underlying == nil {
			return len(p), nil
		}
		return f.Underlying.Write(p)
	}
	return f.WriteFunc(p)
}

func (f *File) Close() error {
	if f.CloseFunc == nil {
		if f.Underlying == nil {
			return nil
		}
		return f.Underlying.Close()
	}
	return f.CloseFunc()
}
