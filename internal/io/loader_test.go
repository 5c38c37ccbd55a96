package ioutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

type row struct {
	id   int
	name string
}

var rowParser = RowParserFunc[row](func(columns []string) (row, error) {
	if len(columns) < 2 {
		return row{}, errors.New("short row")
	}
	id, err := strconv.Atoi(columns[0])
	if err != nil {
		return row{}, err
	}
	return row{id: id, name: columns[1]}, nil
})

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []LoaderOption
		want    []row
	}{
		{
			name:    "skips one header by default",
			content: "id;name\n1;a\n2;b\n",
			want:    []row{{1, "a"}, {2, "b"}},
		},
		{
			name:    "no trailing newline",
			content: "id;name\n1;a\n2;b",
			want:    []row{{1, "a"}, {2, "b"}},
		},
		{
			name:    "custom delimiter and headers",
			content: "title\nid,name\n1,a\n",
			opts:    []LoaderOption{WithDelimiter(','), WithHeaderRowCount(2)},
			want:    []row{{1, "a"}},
		},
		{
			name:    "header is never parsed",
			content: "not;a;number\n3;c\n",
			want:    []row{{3, "c"}},
		},
		{
			name:    "zero header rows",
			content: "1;a\n",
			opts:    []LoaderOption{WithHeaderRowCount(0)},
			want:    []row{{1, "a"}},
		},
		{
			name:    "blank lines skipped",
			content: "id;name\n1;a\n\n2;b\n\n",
			want:    []row{{1, "a"}, {2, "b"}},
		},
		{
			name:    "crlf line endings",
			content: "id;name\r\n1;a\r\n",
			want:    []row{{1, "a"}},
		},
		{
			name:    "header only",
			content: "id;name\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.content)
			loader := NewLoader[row](rowParser, tt.opts...)

			got, err := loader.LoadAll(path)
			if err != nil {
				t.Fatalf("LoadAll() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoader_ParserErrorAbortsLoad(t *testing.T) {
	path := writeTemp(t, "id;name\n1;a\nx;b\n3;c\n")
	loader := NewLoader[row](rowParser)

	var got []row
	var loadErr error
	for r, err := range loader.Load(path) {
		if err != nil {
			loadErr = err
			break
		}
		got = append(got, r)
	}

	if loadErr == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(loadErr.Error(), ":3:") {
		t.Errorf("error %q should name line 3", loadErr)
	}
	if len(got) != 1 {
		t.Errorf("got %d rows before error, want 1", len(got))
	}
}

func TestLoader_MissingFile(t *testing.T) {
	loader := NewLoader[row](rowParser)

	_, err := loader.LoadAll(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAll() error = %v, want os.ErrNotExist", err)
	}
}

type closeCounter struct {
	io.ReadCloser
	closes *int
}

func (c closeCounter) Close() error {
	*c.closes++
	return c.ReadCloser.Close()
}

func TestLoader_EarlyBreak(t *testing.T) {
	path := writeTemp(t, "id;name\n1;a\n2;b\n3;c\n")
	loader := NewLoader[row](rowParser)

	opens, closes := 0, 0
	loader.open = func(path, enc string) (io.ReadCloser, error) {
		rc, err := OpenText(path, enc)
		if err != nil {
			return nil, err
		}
		opens++
		return closeCounter{ReadCloser: rc, closes: &closes}, nil
	}

	n := 0
	for _, err := range loader.Load(path) {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if closes != 0 {
			t.Fatalf("file closed while iterating, after %d rows", n)
		}
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("consumed %d rows, want 2", n)
	}
	if opens != 1 || closes != 1 {
		t.Errorf("opens = %d, closes = %d, want 1 and 1", opens, closes)
	}

	// Full iteration releases the file as well.
	if _, err := loader.LoadAll(path); err != nil {
		t.Fatal(err)
	}
	if opens != 2 || closes != 2 {
		t.Errorf("after LoadAll opens = %d, closes = %d, want 2 and 2", opens, closes)
	}
}

func TestLoader_Idempotent(t *testing.T) {
	path := writeTemp(t, "id;name\n1;a\n2;b\n")
	loader := NewLoader[row](rowParser)

	first, err := loader.LoadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := loader.LoadAll(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("loads differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLoader_Windows1251(t *testing.T) {
	encoded, err := charmap.Windows1251.NewEncoder().String("id;name\n1;Кино\n")
	if err != nil {
		t.Fatal(err)
	}
	path := writeTemp(t, encoded)

	loader := NewLoader[row](rowParser, WithEncoding("windows-1251"))
	got, err := loader.LoadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].name != "Кино" {
		t.Errorf("got %+v, want name %q", got, "Кино")
	}
}

func TestLoader_UnsupportedEncoding(t *testing.T) {
	path := writeTemp(t, "id;name\n")
	loader := NewLoader[row](rowParser, WithEncoding("ebcdic"))

	if _, err := loader.LoadAll(path); err == nil {
		t.Error("expected error for unsupported encoding")
	}
}
