// Package emitter turns a text stream into a C preprocessor macro whose value is
// the escaped text, split over continuation lines.
package emitter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	// Header is written before the macro definition.
	Header = "/* This is a generated file -- Do not edit */\n\n"

	// Width is the column at which a quoted segment is closed and a new one
	// opened. Escape sequences are never split.
	Width = 70

	indent = "    "

	// breakSegment closes the current literal and opens the next one on a new
	// continuation line.
	breakSegment = "\" \\\n" + indent + "\""
)

// ReadErrorPolicy controls how Emit reacts to a failing input stream.
type ReadErrorPolicy int

const (
	// ReadErrorsIgnore ends the literal as if the input had been exhausted.
	ReadErrorsIgnore ReadErrorPolicy = iota
	// ReadErrorsFail ends the literal and returns the read error.
	ReadErrorsFail
)

// Options tunes a single Emit call.
type Options struct {
	// ReadErrors selects the read error policy. Defaults to ReadErrorsIgnore.
	ReadErrors ReadErrorPolicy
	// Logger receives warnings about ignored read errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// Stats summarises one conversion.
type Stats struct {
	// BytesRead counts every byte consumed from the input, NULs included.
	BytesRead int
	// NULsDropped counts the NUL bytes that were skipped.
	NULsDropped int
	// Lines counts newline bytes.
	Lines int
	// Segments counts the quoted literals written.
	Segments int
}

// EscapeByte returns the text written for b inside a quoted literal.
// It reports false for bytes that are dropped from the output (NUL).
func EscapeByte(b byte) (string, bool) {
	switch b {
	case 0:
		return "", false
	case '\n':
		return `\n`, true
	case '\r':
		return `\r`, true
	case '"':
		return `\"`, true
	case '\t':
		return `\t`, true
	case '\f':
		return `\f`, true
	case '\v':
		return `\v`, true
	case '\\':
		return `\\`, true
	default:
		return string([]byte{b}), true
	}
}

// Emit reads r to the end and writes to w a header defining the macro name as
// the escaped content of r.
//
// Neither stream is closed. Output is buffered and flushed before Emit returns.
//
// Parameters:
//   - r: The text to embed.
//   - w: Destination for the generated header.
//   - name: The macro name, copied verbatim.
//   - opts: Read error policy and logger.
//
// Returns:
//   - Stats: Counters describing the conversion.
//   - error: A write error, or a read error under ReadErrorsFail.
func Emit(r io.Reader, w io.Writer, name string, opts Options) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	// bufio.Writer keeps the first write error and reports it on Flush.
	bw.WriteString(Header)
	fmt.Fprintf(bw, "#define %s \\\n%s\"", name, indent)
	st := Stats{Segments: 1}

	var readErr error
	col := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
		st.BytesRead++

		esc, ok := EscapeByte(b)
		if !ok {
			st.NULsDropped++
			continue
		}
		bw.WriteString(esc)

		if b == '\n' {
			bw.WriteString(breakSegment)
			st.Lines++
			st.Segments++
			col = 0
			continue
		}

		col += len(esc)
		if col >= Width {
			bw.WriteString(breakSegment)
			st.Segments++
			col = 0
		}
	}

	bw.WriteString("\"\n")
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("emitting %s: %w", name, err)
	}

	if readErr != nil {
		if opts.ReadErrors == ReadErrorsFail {
			return st, fmt.Errorf("reading input for %s: %w", name, readErr)
		}
		logger.Warn("read error treated as end of input", "name", name, "offset", st.BytesRead, "error", readErr)
	}
	return st, nil
}
