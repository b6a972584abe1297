package ingest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Input is one file handed to the pipeline. Size is the declared byte
// count; when it is zero or negative the decoded length is used.
type Input struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// BytesInput wraps in-memory content as an Input.
func BytesInput(name string, data []byte) Input {
	return Input{
		Name:   name,
		Size:   int64(len(data)),
		Reader: bytes.NewReader(data),
	}
}

// FileInput wraps a file path as an Input. The file opens lazily on
// first read, so building a large batch does not exhaust descriptors.
func FileInput(path string) Input {
	return Input{
		Name:   filepath.Base(path),
		Reader: &lazyFile{path: path},
	}
}

// lazyFile opens its file on first Read. Open failures surface as read
// errors, which the decode step downgrades to a warning and an empty
// document.
type lazyFile struct {
	path string
	f    *os.File
	err  error
}

func (l *lazyFile) Read(p []byte) (int, error) {
	if l.err != nil {
		return 0, l.err
	}
	if l.f == nil {
		f, err := os.Open(l.path)
		if err != nil {
			l.err = err
			return 0, err
		}
		l.f = f
	}
	return l.f.Read(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
