// Package songs implements the three song-table tools.
//
// # Filter
//
// Filter keeps songs released on or before a cutoff and writes them as
// "name - first artist - views" lines, estimating unknown view counts:
//
//	f := songs.NewFilter(cutoff, onProgress)
//	stats, err := f.RunFile(ctx, loader, "./songs.csv", "./songs_new.csv")
//
// # Lookup
//
// FindByArtist scans a loaded list for the first song credited to an artist.
// Lookup wraps it in a prompt loop over any reader and writer:
//
//	err := songs.NewLookup(all, "0").Run(ctx, os.Stdin, os.Stdout)
//
// # Artist split
//
// Partitioner classifies each distinct artist once, as local if the name contains
// any letter of a reference alphabet, foreign otherwise:
//
//	split := songs.NewArtistSplit("russian_artists.txt", "foreign_artists.txt", alphabet, onProgress)
//	p, err := split.RunFile(ctx, loader, "./songs.csv")
//
// # Progress Tracking
//
// Long-running operations report through an optional ProgressFunc:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package songs
