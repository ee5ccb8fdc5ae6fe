package fusesandbox_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	fusesandbox "github.com/Argor57/fuseSandbox"
	"github.com/Argor57/fuseSandbox/internal"
	"github.com/Argor57/fuseSandbox/internal/testingutil"
	"github.com/Argor57/fuseSandbox/mock"
	"golang.org/x/sys/unix"
)

func TestOpenFile(t *testing.T) {
	t.Run("Write", func(t *testing.T) {
		t.Run("Create", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeWrite); err != nil {
				t.Fatal(err)
			}

			fi, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			} else if got, want := fi.Mode().Perm(), os.FileMode(fusesandbox.DefaultPerm)&^testingutil.Umask(t); got != want {
				t.Fatalf("perm=%s, want %s", got, want)
			}

			// Repeating the call must succeed since the file now exists.
			if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeWrite); err != nil {
				t.Fatal(err)
			}
		})

		t.Run("NoTruncate", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			testingutil.MustWriteFile(t, path, []byte("hello"), 0o644)

			if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeWrite); err != nil {
				t.Fatal(err)
			} else if got, want := testingutil.ReadFile(t, path), "hello"; got != want {
				t.Fatalf("content=%q, want %q", got, want)
			}
		})
	})

	t.Run("Read", func(t *testing.T) {
		t.Run("OK", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file")
			testingutil.MustWriteFile(t, path, []byte("hello"), 0o644)
			if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeRead); err != nil {
				t.Fatal(err)
			}
		})

		t.Run("ErrNotExist", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nosuchfile")
			err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeRead)

			var openErr *fusesandbox.OpenError
			if !errors.As(err, &openErr) {
				t.Fatalf("unexpected error: %#v", err)
			} else if !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("unexpected cause: %#v", openErr.Err)
			} else if got, want := openErr.Path, path; got != want {
				t.Fatalf("Path=%q, want %q", got, want)
			}

			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatal("expected file to not be created")
			}
		})

		t.Run("ErrPermission", func(t *testing.T) {
			testingutil.SkipIfRoot(t)

			path := filepath.Join(t.TempDir(), "file")
			testingutil.MustWriteFile(t, path, nil, 0o200)

			err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeRead)
			var openErr *fusesandbox.OpenError
			if !errors.As(err, &openErr) {
				t.Fatalf("unexpected error: %#v", err)
			} else if !errors.Is(err, fs.ErrPermission) {
				t.Fatalf("unexpected cause: %#v", openErr.Err)
			}
		})
	})

	t.Run("ReadWrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeReadWrite); err != nil {
			t.Fatal(err)
		} else if _, err := os.Stat(path); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("Append", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file")
		testingutil.MustWriteFile(t, path, []byte("hello"), 0o644)

		if err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeAppend); err != nil {
			t.Fatal(err)
		} else if got, want := testingutil.ReadFile(t, path), "hello"; got != want {
			t.Fatalf("content=%q, want %q", got, want)
		}
	})

	t.Run("ErrMissingDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nosuchdir", "file")
		err := fusesandbox.OpenFile(&internal.SystemOS{}, path, fusesandbox.ModeWrite)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("unexpected error: %#v", err)
		}
	})

	t.Run("ErrInvalidMode", func(t *testing.T) {
		mos := mock.NewOS()
		mos.OpenFileFunc = func(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error) {
			t.Fatal("unexpected OpenFile() call")
			return nil, nil
		}

		err := fusesandbox.OpenFile(mos, "/mnt/file", fusesandbox.Mode("delete"))
		var modeErr *fusesandbox.InvalidModeError
		if !errors.As(err, &modeErr) {
			t.Fatalf("unexpected error: %#v", err)
		}
	})

	t.Run("Flags", func(t *testing.T) {
		for _, mode := range fusesandbox.Modes() {
			mos := mock.NewOS()
			mos.OpenFileFunc = func(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error) {
				if got, want := flag, mode.Flag(); got != want {
					t.Fatalf("%s: flag=%s, want %s", mode, fusesandbox.FormatFlag(got), fusesandbox.FormatFlag(want))
				} else if got, want := perm, os.FileMode(0o666); got != want {
					t.Fatalf("%s: perm=%s, want %s", mode, got, want)
				}
				return &mock.File{}, nil
			}
			if err := fusesandbox.OpenFile(mos, "/mnt/file", mode); err != nil {
				t.Fatal(err)
			}
		}
	})

	t.Run("ErrClose", func(t *testing.T) {
		var closed bool
		mos := mock.NewOS()
		mos.OpenFileFunc = func(op, name string, flag int, perm os.FileMode) (fusesandbox.File, error) {
			return &mock.File{
				CloseFunc: func() error {
					closed = true
					return unix.EIO
				},
			}, nil
		}

		err := fusesandbox.OpenFile(mos, "/mnt/file", fusesandbox.ModeReadWrite)
		var closeErr *fusesandbox.CloseError
		if !errors.As(err, &closeErr) {
			t.Fatalf("unexpected error: %#v", err)
		} else if got, want := closeErr.Err, error(unix.EIO); got != want {
			t.Fatalf("err=%v, want %v", got, want)
		} else if !closed {
			t.Fatal("expected close")
		}

		var openErr *fusesandbox.OpenError
		if errors.As(err, &openErr) {
			t.Fatal("close failure must not be reported as an open error")
		}
	})
}
