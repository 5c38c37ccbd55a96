package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/song-tools/internal/config"
	"github.com/handiism/song-tools/internal/logging"
	"github.com/handiism/song-tools/internal/songs"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Song Lookup - Find a song by artist name")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  song-lookup [options] [inPath]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "For interactive mode, use: song-lookup-tui")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.New("song-lookup", *verboseFlag)

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Error().Err(err).Msg("Error loading config")
			os.Exit(1)
		}
	}

	if flag.NArg() == 1 {
		settings.InputPath = flag.Arg(0)
	}

	fmt.Printf("Please wait, loading songs from %s...\n", settings.InputPath)

	start := time.Now()
	list, err := settings.SongLoader().LoadAll(settings.InputPath)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading songs")
		os.Exit(1)
	}
	fmt.Printf("Done! Loaded %d songs in %d ms\n", len(list), time.Since(start).Milliseconds())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := songs.NewLookup(list, settings.ExitToken).Run(ctx, os.Stdin, os.Stdout); err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		logger.Error().Err(err).Msg("Error reading input")
		os.Exit(1)
	}
}
