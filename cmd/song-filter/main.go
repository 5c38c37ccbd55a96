package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/song-tools/internal/config"
	"github.com/handiism/song-tools/internal/logging"
	"github.com/handiism/song-tools/internal/songs"
)

func main() {
	// Command line flags
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Song Filter - Keep songs released up to the cutoff date")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  song-filter [options] [inPath] [outPath]")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.New("song-filter", *verboseFlag)

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Error().Err(err).Msg("Error loading config")
			os.Exit(1)
		}
	}

	// Positional arguments
	switch flag.NArg() {
	case 1:
		settings.InputPath = flag.Arg(0)
	case 2:
		settings.InputPath = flag.Arg(0)
		settings.FilterOutputPath = flag.Arg(1)
	}

	cutoff, err := settings.Cutoff()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid cutoff date")
		os.Exit(1)
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := songs.NewFilter(cutoff, logging.Progress(logger))
	if _, err := filter.RunFile(ctx, settings.SongLoader(), settings.InputPath, settings.FilterOutputPath); err != nil {
		if ctx.Err() != nil {
			logger.Warn().Msg("Filtering cancelled")
			os.Exit(130)
		}
		logger.Error().Err(err).Msg("Error filtering songs")
		os.Exit(1)
	}
}
