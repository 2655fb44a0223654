package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A ParseError reports a trace line that could not be parsed. Reading can
// continue after a ParseError.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MaxLineLength is the longest trace line the reader parses. Longer lines
// are drained and reported as a *ParseError.
const MaxLineLength = 4096

// quotedPrefix bounds how much of an overlong line a ParseError keeps.
const quotedPrefix = 32

var errLineTooLong = errors.New("line too long")

// A Reader reads records from a trace one line at a time.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader creates a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record. Blank lines are skipped. It returns io.EOF
// after the last record and a *ParseError for a malformed line.
func (r *Reader) Next() (Record, error) {
	for {
		text, tooLong, err := r.readLine()
		if err != nil {
			return Record{}, err
		}

		r.line++

		if tooLong {
			return Record{}, &ParseError{
				Line: r.line,
				Text: text[:quotedPrefix] + "...",
				Err:  errLineTooLong,
			}
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, err := ParseRecord(text)
		if err != nil {
			return Record{}, &ParseError{Line: r.line, Text: text, Err: err}
		}

		return rec, nil
	}
}

// readLine returns the next line without its line ending. A line longer
// than MaxLineLength is read to its end, and only its first MaxLineLength
// bytes are returned.
func (r *Reader) readLine() (text string, tooLong bool, err error) {
	var buf []byte

	for {
		chunk, isPrefix, err := r.r.ReadLine()
		if err == io.EOF && (len(buf) > 0 || tooLong) {
			return string(buf), tooLong, nil
		}

		if err != nil {
			return "", false, err
		}

		switch {
		case tooLong:
		case len(buf)+len(chunk) > MaxLineLength:
			tooLong = true
			buf = append(buf, chunk[:MaxLineLength-len(buf)]...)
		default:
			buf = append(buf, chunk...)
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}
