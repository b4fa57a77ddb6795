// Package files opens the input and output streams for a conversion.
package files

import (
	"fmt"
	"io"
	"os"
)

// Stdio is the path that selects standard input or standard output.
const Stdio = "-"

// InputOpenError is returned when the input file cannot be opened for reading.
type InputOpenError struct {
	Path string
	Err  error
}

func (e *InputOpenError) Error() string {
	return fmt.Sprintf("Failed to open '%s' for reading.", e.Path)
}

func (e *InputOpenError) Unwrap() error { return e.Err }

// OutputOpenError is returned when the output file cannot be opened for writing.
type OutputOpenError struct {
	Path string
	Err  error
}

func (e *OutputOpenError) Error() string {
	return fmt.Sprintf("Failed to open '%s' for writing.", e.Path)
}

func (e *OutputOpenError) Unwrap() error { return e.Err }

// OpenInput opens path for reading. "-" selects stdin, which is not closed by
// the returned closer.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputOpenError{Path: path, Err: err}
	}
	return f, nil
}

// CreateOutput opens path for writing, truncating any existing content.
// An empty path or "-" selects stdout, which is not closed by the returned
// closer.
func CreateOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return nopWriteCloser{stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &OutputOpenError{Path: path, Err: err}
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
