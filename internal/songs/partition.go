package songs

import (
	"context"
	"fmt"
	"iter"
	"strings"

	ioutils "github.com/handiism/song-tools/internal/io"
	"github.com/handiism/song-tools/internal/model"
	"golang.org/x/sync/errgroup"
)

// Partitioner sorts artist names into local-alphabet and foreign buckets.
//
// Each distinct name (exact string match) is classified once, the first time
// it is seen. A name is local if any of its characters is in the alphabet.
type Partitioner struct {
	alphabet string
	seen     map[string]struct{}
	local    []string
	foreign  []string
}

// NewPartitioner creates a Partitioner using alphabet as the local reference letters.
func NewPartitioner(alphabet string) *Partitioner {
	return &Partitioner{
		alphabet: alphabet,
		seen:     make(map[string]struct{}),
	}
}

// IsLocal reports whether name contains at least one character of alphabet.
func IsLocal(name, alphabet string) bool {
	return strings.ContainsAny(name, alphabet)
}

// Add classifies every not yet seen artist of s.
func (p *Partitioner) Add(s model.Song) {
	for _, artist := range s.Artists {
		if _, ok := p.seen[artist]; ok {
			continue
		}
		p.seen[artist] = struct{}{}

		if IsLocal(artist, p.alphabet) {
			p.local = append(p.local, artist)
			continue
		}
		p.foreign = append(p.foreign, artist)
	}
}

// Local returns local-alphabet names in first-seen order.
func (p *Partitioner) Local() []string {
	return p.local
}

// Foreign returns the remaining names in first-seen order.
func (p *Partitioner) Foreign() []string {
	return p.foreign
}

// Run adds every song of the sequence. The first error stops the run.
func (p *Partitioner) Run(ctx context.Context, songs iter.Seq2[model.Song, error]) error {
	for s, err := range songs {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		p.Add(s)
	}
	return nil
}

// ArtistSplit partitions the artists of a songs table and appends the two
// buckets to their files.
type ArtistSplit struct {
	LocalPath   string
	ForeignPath string
	Alphabet    string

	onProgress ProgressFunc
}

// NewArtistSplit creates an ArtistSplit.
func NewArtistSplit(localPath, foreignPath, alphabet string, onProgress ProgressFunc) *ArtistSplit {
	return &ArtistSplit{
		LocalPath:   localPath,
		ForeignPath: foreignPath,
		Alphabet:    alphabet,
		onProgress:  onProgress,
	}
}

// RunFile reads loader's input file, classifies its artists and appends
// them to LocalPath and ForeignPath, one name per line.
//
// Nothing is written if reading fails.
func (a *ArtistSplit) RunFile(ctx context.Context, loader *ioutils.Loader[model.Song], inPath string) (*Partitioner, error) {
	p := NewPartitioner(a.Alphabet)
	if err := p.Run(ctx, loader.Load(inPath)); err != nil {
		return nil, err
	}

	a.onProgress.emit(LevelInfo, fmt.Sprintf("Local artists: %d", len(p.Local())))
	a.onProgress.emit(LevelInfo, fmt.Sprintf("Foreign artists: %d", len(p.Foreign())))

	if err := WriteArtistFiles(ctx, p, a.LocalPath, a.ForeignPath); err != nil {
		return nil, err
	}

	a.onProgress.emit(LevelSuccess, fmt.Sprintf("Appended artists to %s and %s", a.LocalPath, a.ForeignPath))
	return p, nil
}

// WriteArtistFiles appends both buckets of p to their files concurrently.
//
// The writes are not atomic as a pair: if one append fails, the other file
// may already hold its appended lines.
func WriteArtistFiles(ctx context.Context, p *Partitioner, localPath, foreignPath string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ioutils.AppendLines(ctx, localPath, p.Local())
	})
	g.Go(func() error {
		return ioutils.AppendLines(ctx, foreignPath, p.Foreign())
	})

	return g.Wait()
}
