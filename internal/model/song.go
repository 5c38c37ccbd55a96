package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ArtistSeparator joins multiple artists inside the artist_name column.
const ArtistSeparator = " & "

// Column positions of the songs table: streams;artist_name;track_name;date
const (
	ColumnStreams = iota
	ColumnArtists
	ColumnTrack
	ColumnDate

	columnCount
)

// DateLayout is the primary day/month/year layout used by the songs table.
const DateLayout = "02.01.2006"

// dateLayouts are tried in order when parsing a release date.
var dateLayouts = []string{
	DateLayout,
	"2.1.2006",
	"02/01/2006",
	"2006-01-02",
}

// unixEpochDayNumber is the day number of 1970-01-01 counted from 0001-01-01.
const unixEpochDayNumber = 719162

var (
	// ErrColumnCount is returned when a row has fewer columns than the table defines.
	ErrColumnCount = errors.New("not enough columns")

	// ErrViewCount is returned when the streams column is not an unsigned integer.
	ErrViewCount = errors.New("invalid view count")

	// ErrReleaseDate is returned when the date column is not a valid calendar date.
	ErrReleaseDate = errors.New("invalid release date")
)

// Song represents one row of the songs table.
//
// Song is a value type: it is built once per row by ParseSong and never
// mutated afterwards. WithViewCount returns a modified copy.
//
// A ViewCount of zero means the number of streams is unknown.
type Song struct {
	// Name is the track title (track_name).
	Name string

	// Artists holds every artist credited on the track, in table order.
	// It always has at least one element once parsed, though that element may be empty.
	Artists []string

	// ViewCount is the number of streams (streams).
	ViewCount uint64

	// ReleaseDate is the release day (date) at midnight UTC.
	ReleaseDate time.Time
}

// ParseSong builds a Song from the columns of one table row.
//
// Expected columns are streams;artist_name;track_name;date. Extra columns are ignored.
func ParseSong(columns []string) (Song, error) {
	if len(columns) < columnCount {
		return Song{}, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(columns), columnCount)
	}

	views, err := strconv.ParseUint(strings.TrimSpace(columns[ColumnStreams]), 10, 64)
	if err != nil {
		return Song{}, fmt.Errorf("%w %q: %v", ErrViewCount, columns[ColumnStreams], err)
	}

	released, err := ParseDate(columns[ColumnDate])
	if err != nil {
		return Song{}, err
	}

	return Song{
		Name:        columns[ColumnTrack],
		Artists:     SplitArtists(columns[ColumnArtists]),
		ViewCount:   views,
		ReleaseDate: released,
	}, nil
}

// SongParser adapts ParseSong to the loader's row parser interface.
type SongParser struct{}

// ParseRow implements ioutils.RowParser.
func (SongParser) ParseRow(columns []string) (Song, error) {
	return ParseSong(columns)
}

// ParseDate parses a day/month/year date such as "01.01.2002".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrReleaseDate, s)
}

// MustParseDate is like ParseDate but panics on error.
// It is meant for compile-time constants such as the filter cutoff.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// SplitArtists splits an artist_name value on ArtistSeparator.
//
// The result always has at least one element; an empty value yields [""].
func SplitArtists(s string) []string {
	return strings.Split(s, ArtistSeparator)
}

// DayNumber returns the number of days between 0001-01-01 and the date part of t.
func DayNumber(t time.Time) int64 {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.Unix()/86400 + unixEpochDayNumber
}

// FirstArtist returns the first credited artist.
//
// It panics if Artists is empty, which ParseSong never produces.
func (s Song) FirstArtist() string {
	return s.Artists[0]
}

// NormalizedArtists returns the artists joined with ArtistSeparator,
// or the single artist unchanged.
func (s Song) NormalizedArtists() string {
	if len(s.Artists) == 1 {
		return s.Artists[0]
	}
	return strings.Join(s.Artists, ArtistSeparator)
}

// HasArtist reports whether name exactly matches one of the credited artists.
func (s Song) HasArtist(name string) bool {
	for _, a := range s.Artists {
		if a == name {
			return true
		}
	}
	return false
}

// WithViewCount returns a copy of s with ViewCount replaced.
func (s Song) WithViewCount(views uint64) Song {
	return Song{
		Name:        s.Name,
		Artists:     s.Artists,
		ViewCount:   views,
		ReleaseDate: s.ReleaseDate,
	}
}

// FallbackViewCount estimates the number of streams of a song whose ViewCount is unknown.
//
// The estimate is the number of days between the release date and base, divided by
// the combined length in characters of the normalized artist string and the track name,
// times 10000:
//
//	floor(|base - released| / (len(artists) + len(name))) * 10000
//
// The divisor is not checked. A song with an empty name and empty artists panics.
func FallbackViewCount(s Song, base time.Time) uint64 {
	days := DayNumber(base) - DayNumber(s.ReleaseDate)
	length := int64(utf8.RuneCountInString(s.NormalizedArtists()) + utf8.RuneCountInString(s.Name))

	q := days / length
	if q < 0 {
		q = -q
	}
	return uint64(q) * 10000
}
