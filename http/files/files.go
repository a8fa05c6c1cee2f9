// Package files opens whole or bounded views onto files held in an [fs.FS].
package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/xy-planning-network/courier"
)

var (
	ErrNotExist = fmt.Errorf("%w: file", courier.ErrNotExist)
	ErrNotValid = fmt.Errorf("%w: section", courier.ErrNotValid)
)

// A Store stats and opens files by name.
//
// Callers own the io.ReadCloser returned and must close it.
type Store interface {
	Stat(name string) (int64, error)
	Open(name string) (io.ReadCloser, error)
	OpenSection(name string, start, length int64) (io.ReadCloser, error)
}

// An FSStore implements Store over an fs.FS.
type FSStore struct {
	fsys fs.FS
}

// New constructs an *FSStore reading from fsys.
func New(fsys fs.FS) *FSStore { return &FSStore{fsys: fsys} }

// Dir constructs an *FSStore reading from the directory dir on the OS filesystem.
func Dir(dir string) *FSStore { return New(os.DirFS(dir)) }

// Stat returns the size in bytes of the file called name.
//
// Directories are treated as not existing.
func (s *FSStore) Stat(name string) (int64, error) {
	fi, err := fs.Stat(s.fsys, name)
	if err != nil {
		return 0, wrap(name, err)
	}

	if fi.IsDir() {
		return 0, fmt.Errorf("%w: %s is a directory", ErrNotExist, name)
	}

	return fi.Size(), nil
}

// Open opens the file called name for reading from the start.
func (s *FSStore) Open(name string) (io.ReadCloser, error) {
	f, err := s.open(name)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// OpenSection opens the file called name limited to reading
// length bytes beginning at start.
func (s *FSStore) OpenSection(name string, start, length int64) (io.ReadCloser, error) {
	if start < 0 || length < 0 {
		return nil, fmt.Errorf("%w: start %d, length %d", ErrNotValid, start, length)
	}

	f, err := s.open(name)
	if err != nil {
		return nil, err
	}

	r, err := section(f, start, length)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("can't open section of %s: %w", name, err)
	}

	return &sectionReadCloser{Reader: r, Closer: f}, nil
}

func (s *FSStore) open(name string) (fs.File, error) {
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, wrap(name, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, wrap(name, err)
	}

	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotExist, name)
	}

	return f, nil
}

// section limits reading f to length bytes from start
// using the cheapest means f supports.
func section(f fs.File, start, length int64) (io.Reader, error) {
	if ra, ok := f.(io.ReaderAt); ok {
		return io.NewSectionReader(ra, start, length), nil
	}

	if sk, ok := f.(io.Seeker); ok {
		if _, err := sk.Seek(start, io.SeekStart); err != nil {
			return nil, err
		}
		return io.LimitReader(f, length), nil
	}

	if _, err := io.CopyN(io.Discard, f, start); err != nil {
		return nil, err
	}

	return io.LimitReader(f, length), nil
}

type sectionReadCloser struct {
	io.Reader
	io.Closer
}

func wrap(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return fmt.Errorf("%w: %s: %s", ErrNotExist, name, err)
	}

	return fmt.Errorf("can't open %s: %w", name, err)
}
