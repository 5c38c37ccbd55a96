// Package ioutils provides file system utilities for the song tools.
//
// This package contains functions for:
//   - Opening text files in legacy single-byte encodings
//   - Streaming line output
//   - Appending lines to a file
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation
// between lines, though a single write may not be interruptible.
package ioutils

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// OpenText opens a file for reading and decodes it to UTF-8.
//
// Supported encodings (case-insensitive):
//   - "", "utf-8", "utf8" - no decoding
//   - "windows-1251", "cp1251" - Cyrillic Windows code page
//   - "koi8-r" - KOI8-R
//   - "iso-8859-1", "latin1" - Latin-1
//
// The returned ReadCloser closes the underlying file.
func OpenText(path, enc string) (io.ReadCloser, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if dec == nil {
		return f, nil
	}

	return struct {
		io.Reader
		io.Closer
	}{
		Reader: transform.NewReader(bufio.NewReader(f), dec.NewDecoder()),
		Closer: f,
	}, nil
}

// IsSupportedEncoding reports whether OpenText understands enc.
func IsSupportedEncoding(enc string) bool {
	_, err := decoderFor(enc)
	return err == nil
}

func decoderFor(enc string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1251", "cp1251":
		return charmap.Windows1251, nil
	case "koi8-r", "koi8r":
		return charmap.KOI8R, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}

// LineWriter writes lines to a file as they are produced.
//
// Lines are buffered; Close flushes the buffer and closes the file and
// must be called on every path.
//
// Example:
//
//	w, err := CreateLineWriter("./songs_new.csv")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.WriteLine("track_name - artist_name - streams")
type LineWriter struct {
	f   *os.File
	buf *bufio.Writer
}

// CreateLineWriter creates or truncates the file at path.
//
// Missing parent directories are created.
func CreateLineWriter(path string) (*LineWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &LineWriter{f: f, buf: bufio.NewWriter(f)}, nil
}

// WriteLine writes s followed by a newline.
func (w *LineWriter) WriteLine(s string) error {
	if _, err := w.buf.WriteString(s); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Close flushes buffered lines and closes the file.
// The first error encountered is returned.
func (w *LineWriter) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// AppendLines appends each line, followed by a newline, to the file at path.
//
// The file is created with mode 0644 if it doesn't exist. Existing content is kept.
//
// Example:
//
//	err := AppendLines(ctx, "russian_artists.txt", []string{"Кино", "ДДТ"})
func AppendLines(ctx context.Context, path string, lines []string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	buf := bufio.NewWriter(f)
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := buf.WriteString(line); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}

	return buf.Flush()
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
