// Package model defines the song record shared by every song-tools binary.
//
// # Song
//
// Song is one row of the semicolon-separated songs table
// (streams;artist_name;track_name;date):
//
//	song, err := model.ParseSong(strings.Split("0;A & B;Title;01.05.1999", ";"))
//	fmt.Println(song.Artists)     // [A B]
//	fmt.Println(song.FirstArtist()) // A
//
// SongParser plugs ParseSong into the generic table loader:
//
//	loader := ioutils.NewLoader[model.Song](model.SongParser{})
//
// # Derived values
//
// DayNumber counts days from 0001-01-01 and is used for date arithmetic.
// FallbackViewCount estimates the streams of a song whose view count is zero:
//
//	if song.ViewCount == 0 {
//	    song = song.WithViewCount(model.FallbackViewCount(song, cutoff))
//	}
package model
