package songs

import (
	"context"
	"fmt"
	"iter"
	"time"

	ioutils "github.com/handiism/song-tools/internal/io"
	"github.com/handiism/song-tools/internal/model"
)

const (
	// FilterHeader is the first line of a filtered table.
	FilterHeader = "track_name - artist_name - streams"

	// FilterSeparator separates columns of a filtered table.
	FilterSeparator = " - "
)

// LineSink receives output lines one at a time.
type LineSink interface {
	WriteLine(s string) error
}

// FilterStats summarizes a filter run.
type FilterStats struct {
	// Read is the number of songs consumed from the input.
	Read int

	// Written is the number of songs released on or before the cutoff.
	Written int

	// Derived is the number of written songs whose view count was estimated.
	Derived int
}

// Filter keeps songs released on or before a cutoff date and writes them
// as "name - first artist - views" lines.
//
// Songs with an unknown (zero) view count get FallbackViewCount relative to the cutoff.
type Filter struct {
	cutoff     time.Time
	onProgress ProgressFunc
}

// NewFilter creates a Filter for the given cutoff date.
func NewFilter(cutoff time.Time, onProgress ProgressFunc) *Filter {
	return &Filter{
		cutoff:     cutoff,
		onProgress: onProgress,
	}
}

// Keep reports whether s was released on or before the cutoff.
func (f *Filter) Keep(s model.Song) bool {
	return model.DayNumber(s.ReleaseDate) <= model.DayNumber(f.cutoff)
}

// Apply returns s with an estimated view count if its view count is unknown.
// The second result reports whether an estimate was made.
func (f *Filter) Apply(s model.Song) (model.Song, bool) {
	if s.ViewCount != 0 {
		return s, false
	}
	return s.WithViewCount(model.FallbackViewCount(s, f.cutoff)), true
}

// Run writes the header and then every kept song to out as the input is consumed.
//
// The first error from songs or out stops the run.
func (f *Filter) Run(ctx context.Context, songs iter.Seq2[model.Song, error], out LineSink) (FilterStats, error) {
	var stats FilterStats

	if err := out.WriteLine(FilterHeader); err != nil {
		return stats, err
	}

	for s, err := range songs {
		if err != nil {
			return stats, err
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Read++

		if !f.Keep(s) {
			continue
		}

		song, derived := f.Apply(s)
		if derived {
			stats.Derived++
			f.onProgress.emit(LevelVerbose, fmt.Sprintf("Estimated %d views for %q", song.ViewCount, song.Name))
		}

		if err := out.WriteLine(FormatFilterLine(song)); err != nil {
			return stats, err
		}
		stats.Written++
	}

	return stats, nil
}

// RunFile filters the songs of loader's input file into a new file at outPath.
//
// The output file is created (or truncated) before the first song is read and
// is closed on every return path.
func (f *Filter) RunFile(ctx context.Context, loader *ioutils.Loader[model.Song], inPath, outPath string) (stats FilterStats, err error) {
	w, err := ioutils.CreateLineWriter(outPath)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	f.onProgress.emit(LevelInfo, fmt.Sprintf("Filtering %s into %s (released on or before %s)", inPath, outPath, f.cutoff.Format(model.DateLayout)))

	stats, err = f.Run(ctx, loader.Load(inPath), w)
	if err != nil {
		return stats, err
	}

	f.onProgress.emit(LevelSuccess, fmt.Sprintf("Wrote %d of %d songs, %d view counts estimated", stats.Written, stats.Read, stats.Derived))
	return stats, nil
}

// FormatFilterLine renders a song as "name - first artist - views".
// Artists after the first are not written.
func FormatFilterLine(s model.Song) string {
	return s.Name + FilterSeparator + s.FirstArtist() + FilterSeparator + fmt.Sprint(s.ViewCount)
}
