package songs

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/song-tools/internal/model"
)

// Prompt texts of the interactive lookup.
const (
	LookupPrompt   = "Enter artist name: "
	LookupNotFound = "Sorry, nothing was found"
	LookupGoodbye  = "Goodbye"
)

// FindByArtist returns the first song credited to artist.
//
// The scan is linear and the match exact and case-sensitive.
// The second result is false if no song matches.
func FindByArtist(songs []model.Song, artist string) (model.Song, bool) {
	for _, s := range songs {
		if s.HasArtist(artist) {
			return s, true
		}
	}
	return model.Song{}, false
}

// Lookup answers artist queries read line by line from an input stream.
//
// Example:
//
//	lookup := NewLookup(songs, "0")
//	err := lookup.Run(ctx, os.Stdin, os.Stdout)
type Lookup struct {
	songs     []model.Song
	exitToken string
}

// NewLookup creates a Lookup over an already loaded list of songs.
// Entering exitToken ends the session.
func NewLookup(songs []model.Song, exitToken string) *Lookup {
	return &Lookup{
		songs:     songs,
		exitToken: exitToken,
	}
}

// Answer returns the reply line for one query.
func (l *Lookup) Answer(artist string) string {
	s, ok := FindByArtist(l.songs, artist)
	if !ok {
		return LookupNotFound
	}
	return FoundMessage(artist, s)
}

// Run prompts on out and answers every line read from in until the exit
// token is entered, in is exhausted or ctx is cancelled.
//
// Blank lines prompt again without a lookup. End of input ends the session
// like the exit token does instead of prompting again, since a drained
// reader never yields another line.
//
// Lines are read on a separate goroutine so that cancelling ctx returns
// ctx.Err() even while the read is blocked. That goroutine exits when in
// reaches end of input or fails.
func (l *Lookup) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Type %s to exit\n", l.exitToken)

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

loop:
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, LookupPrompt)

		var query string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				// End of input leaves the cursor after the prompt.
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return err
				}
				break loop
			}
			query = line
		}

		if query == l.exitToken {
			break
		}
		if strings.TrimSpace(query) == "" {
			continue
		}

		fmt.Fprintln(out, l.Answer(query))
	}

	fmt.Fprintln(out, LookupGoodbye)
	return nil
}

// FoundMessage renders a successful lookup.
func FoundMessage(artist string, s model.Song) string {
	return fmt.Sprintf("%s has a song: %s", artist, s.Name)
}
