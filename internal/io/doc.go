// Package ioutils provides table loading and file output utilities.
//
// This package contains:
//   - A generic, lazy loader for delimited text tables
//   - Decoding of legacy single-byte encodings (windows-1251, koi8-r)
//   - A streaming line writer and an append helper
//   - Directory creation
//
// # Loading Tables
//
// Loader splits each line on a delimiter and hands the columns to a RowParser:
//
//	loader := ioutils.NewLoader[model.Song](model.SongParser{},
//	    ioutils.WithDelimiter(';'),
//	    ioutils.WithHeaderRowCount(1),
//	)
//
//	for song, err := range loader.Load("./songs.csv") {
//	    if err != nil {
//	        return err
//	    }
//	    // ...
//	}
//
// Breaking out of the loop closes the file.
//
// # Writing Lines
//
//	w, err := ioutils.CreateLineWriter("./songs_new.csv")
//	defer w.Close()
//	w.WriteLine("track_name - artist_name - streams")
//
//	// Append to an existing file
//	err := ioutils.AppendLines(ctx, "foreign_artists.txt", names)
package ioutils
