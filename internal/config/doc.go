// Package config provides configuration management for the song tools.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of loaded settings
//   - Conversion to loader options for the ioutils package
//
// # Default Settings
//
// Use DefaultSettings() to get the values the tools use without a config file:
//
//	settings := config.DefaultSettings()
//	// Reads ./songs.csv, ';' delimited, one header row
//	// Filters up to 01.01.2002 into ./songs_new.csv
//	// Splits artists into russian_artists.txt and foreign_artists.txt
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Invalid JSON or a field failed validation
//	}
//
// Keys left out of the file keep their defaults.
//
// # Reading the Table
//
//	loader := settings.SongLoader()
//	songs, err := loader.LoadAll(settings.InputPath)
package config
