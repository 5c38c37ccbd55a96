package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/song-tools/internal/config"
	"github.com/handiism/song-tools/internal/logging"
	"github.com/handiism/song-tools/internal/songs"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#4ECDC4")).
	Padding(0, 2)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
	)
	flag.Parse()

	logger := logging.New("artist-split", *verboseFlag)

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			logger.Error().Err(err).Msg("Error loading config")
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	split := songs.NewArtistSplit(
		settings.LocalArtistsPath,
		settings.ForeignArtistsPath,
		settings.LocalAlphabet,
		logging.Progress(logger),
	)

	p, err := split.RunFile(ctx, settings.SongLoader(), settings.InputPath)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn().Msg("Split cancelled")
			os.Exit(130)
		}
		logger.Error().Err(err).Msg("Error splitting artists")
		os.Exit(1)
	}

	fmt.Println(boxStyle.Render(fmt.Sprintf(
		"Russian artists: %d\nForeign artists: %d",
		len(p.Local()),
		len(p.Foreign()),
	)))
}
