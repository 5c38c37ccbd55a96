package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	if got := utf8.RuneCountInString(s.LocalAlphabet); got != 33 {
		t.Errorf("LocalAlphabet has %d letters, want 33", got)
	}
	if s.DelimiterRune() != ';' {
		t.Errorf("DelimiterRune() = %q, want ';'", s.DelimiterRune())
	}

	cutoff, err := s.Cutoff()
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2002, 1, 1, 0, 0, 0, 0, time.UTC); !cutoff.Equal(want) {
		t.Errorf("Cutoff() = %v, want %v", cutoff, want)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.InputPath != DefaultSettings().InputPath {
		t.Errorf("InputPath = %q, want default", s.InputPath)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"input_path": "/data/top.csv", "encoding": "cp1251"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.InputPath != "/data/top.csv" {
		t.Errorf("InputPath = %q, want %q", s.InputPath, "/data/top.csv")
	}
	if s.Encoding != "cp1251" {
		t.Errorf("Encoding = %q, want %q", s.Encoding, "cp1251")
	}
	if s.CutoffDate != "01.01.2002" {
		t.Errorf("CutoffDate = %q, want default", s.CutoffDate)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantField string
	}{
		{"bad json", `{"input_path":`, ""},
		{"long delimiter", `{"delimiter": ";;"}`, "delimiter"},
		{"negative header rows", `{"header_row_count": -1}`, "header_row_count"},
		{"unknown encoding", `{"encoding": "ebcdic"}`, "encoding"},
		{"bad cutoff", `{"cutoff_date": "yesterday"}`, "cutoff_date"},
		{"same artist files", `{"foreign_artists_path": "russian_artists.txt"}`, "foreign_artists_path"},
		{"empty exit token", `{"exit_token": ""}`, "exit_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tt.json), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantField != "" && !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should mention %q", err, tt.wantField)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	s := DefaultSettings()
	s.Delimiter = ","
	s.HeaderRowCount = 2
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.DelimiterRune() != ',' || loaded.HeaderRowCount != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSongLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	content := "streams;artist_name;track_name;date\n10;A & B;Song;01.02.2000\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	songs, err := DefaultSettings().SongLoader().LoadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(songs) != 1 {
		t.Fatalf("got %d songs, want 1", len(songs))
	}
	if songs[0].Name != "Song" || len(songs[0].Artists) != 2 || songs[0].ViewCount != 10 {
		t.Errorf("song = %+v", songs[0])
	}
}
