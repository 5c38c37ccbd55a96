package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	ioutils "github.com/handiism/song-tools/internal/io"
	"github.com/handiism/song-tools/internal/model"
)

// RussianAlphabet is the default local alphabet: the 33 lowercase Russian letters.
const RussianAlphabet = "абвгдеёжзийклмнопрстуфхцчшщъыьэюя"

// Settings holds all configuration options.
type Settings struct {
	// Input table
	InputPath      string `json:"input_path" validate:"required"`
	Delimiter      string `json:"delimiter" validate:"len=1"`
	HeaderRowCount int    `json:"header_row_count" validate:"gte=0"`
	Encoding       string `json:"encoding" validate:"textencoding"`

	// Filter (song-filter)
	FilterOutputPath string `json:"filter_output_path" validate:"required"`
	CutoffDate       string `json:"cutoff_date" validate:"required,songdate"`

	// Lookup (song-lookup)
	ExitToken string `json:"exit_token" validate:"required"`

	// Partition (artist-split)
	LocalArtistsPath   string `json:"local_artists_path" validate:"required"`
	ForeignArtistsPath string `json:"foreign_artists_path" validate:"required,nefield=LocalArtistsPath"`
	LocalAlphabet      string `json:"local_alphabet" validate:"required"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		InputPath:      "./songs.csv",
		Delimiter:      ";",
		HeaderRowCount: 1,
		Encoding:       "utf-8",

		FilterOutputPath: "./songs_new.csv",
		CutoffDate:       "01.01.2002",

		ExitToken: "0",

		LocalArtistsPath:   "russian_artists.txt",
		ForeignArtistsPath: "foreign_artists.txt",
		LocalAlphabet:      RussianAlphabet,
	}
}

// Load reads settings from a JSON file.
// Missing keys keep their default values; a missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings and reports every invalid field.
func (s *Settings) Validate() error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value())))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

// DelimiterRune returns the column delimiter as a rune.
func (s *Settings) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	return r
}

// Cutoff returns the parsed filter cutoff date.
func (s *Settings) Cutoff() (time.Time, error) {
	return model.ParseDate(s.CutoffDate)
}

// LoaderOptions converts the input table settings to loader options.
func (s *Settings) LoaderOptions() []ioutils.LoaderOption {
	return []ioutils.LoaderOption{
		ioutils.WithDelimiter(s.DelimiterRune()),
		ioutils.WithHeaderRowCount(s.HeaderRowCount),
		ioutils.WithEncoding(s.Encoding),
	}
}

// SongLoader creates a loader for the songs table described by the settings.
func (s *Settings) SongLoader() *ioutils.Loader[model.Song] {
	return ioutils.NewLoader[model.Song](model.SongParser{}, s.LoaderOptions()...)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so messages match the config file.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("textencoding", func(fl validator.FieldLevel) bool {
			return ioutils.IsSupportedEncoding(fl.Field().String())
		})
		_ = validate.RegisterValidation("songdate", func(fl validator.FieldLevel) bool {
			_, err := model.ParseDate(fl.Field().String())
			return err == nil
		})
	})
	return validate
}
