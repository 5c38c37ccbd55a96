package ioutils

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// maxLineSize bounds a single table line.
const maxLineSize = 1024 * 1024

// RowParser turns the columns of one table line into a record.
type RowParser[T any] interface {
	ParseRow(columns []string) (T, error)
}

// RowParserFunc adapts an ordinary function to RowParser.
type RowParserFunc[T any] func(columns []string) (T, error)

// ParseRow calls f(columns).
func (f RowParserFunc[T]) ParseRow(columns []string) (T, error) {
	return f(columns)
}

// Loader reads a delimited text table into records of type T.
//
// Loader does not understand quoting or escaping: every occurrence of
// Delimiter starts a new column. Validation is entirely up to the parser.
//
// Example:
//
//	loader := NewLoader[model.Song](model.SongParser{})
//	for song, err := range loader.Load("./songs.csv") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(song.Name)
//	}
type Loader[T any] struct {
	parser RowParser[T]
	open   func(path, enc string) (io.ReadCloser, error)

	// Delimiter separates columns. Defaults to ';'.
	Delimiter rune

	// HeaderRowCount is the number of leading lines skipped unconditionally. Defaults to 1.
	HeaderRowCount int

	// Encoding names the text encoding of the file (see OpenText). Empty means UTF-8.
	Encoding string
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	delimiter      rune
	headerRowCount int
	encoding       string
}

// WithDelimiter sets the column delimiter.
func WithDelimiter(d rune) LoaderOption {
	return func(o *loaderOptions) { o.delimiter = d }
}

// WithHeaderRowCount sets how many leading lines are skipped.
func WithHeaderRowCount(n int) LoaderOption {
	return func(o *loaderOptions) { o.headerRowCount = n }
}

// WithEncoding sets the text encoding of the input file.
func WithEncoding(enc string) LoaderOption {
	return func(o *loaderOptions) { o.encoding = enc }
}

// NewLoader creates a Loader that maps rows with parser.
func NewLoader[T any](parser RowParser[T], opts ...LoaderOption) *Loader[T] {
	o := loaderOptions{
		delimiter:      ';',
		headerRowCount: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Loader[T]{
		parser:         parser,
		open:           OpenText,
		Delimiter:      o.delimiter,
		HeaderRowCount: o.headerRowCount,
		Encoding:       o.encoding,
	}
}

// Load returns a lazy, single-pass sequence of the records in the file at path.
//
// The file is opened when iteration starts and closed when it ends, including
// when the consumer stops early. The first HeaderRowCount lines are discarded
// without parsing and blank lines after them are skipped.
//
// Any failure (opening, reading or parsing) is yielded once as the error of the
// final pair and ends the sequence. Parser errors are prefixed with path:line.
// To read the file again, range over Load again.
func (l *Loader[T]) Load(path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		open := l.open
		if open == nil {
			open = OpenText
		}

		f, err := open(path, l.Encoding)
		if err != nil {
			yield(zero, err)
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		sep := string(l.Delimiter)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			if lineNo <= l.HeaderRowCount {
				continue
			}

			line := sc.Text()
			if line == "" {
				continue
			}

			rec, err := l.parser.ParseRow(strings.Split(line, sep))
			if err != nil {
				yield(zero, fmt.Errorf("%s:%d: %w", path, lineNo, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}

		if err := sc.Err(); err != nil {
			yield(zero, fmt.Errorf("read %s: %w", path, err))
		}
	}
}

// LoadAll reads every record of the file at path into memory.
func (l *Loader[T]) LoadAll(path string) ([]T, error) {
	var records []T
	for rec, err := range l.Load(path) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
