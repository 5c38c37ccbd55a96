// Package tui provides a Bubble Tea terminal user interface for the artist lookup.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/song-tools/internal/config"
	"github.com/handiism/song-tools/internal/model"
	"github.com/handiism/song-tools/internal/songs"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	songStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxHistory is the number of answered queries kept on screen.
const maxHistory = 10

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateInput
	StateError
)

// Answer is one answered query.
type Answer struct {
	Artist string
	Song   model.Song
	Found  bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings

	songs   []model.Song
	elapsed time.Duration
	history []Answer
	err     error

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "artist name"
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	return Model{
		state:     StateLoading,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadSongs())
}

// LoadedMsg is sent when the songs table has been read.
type LoadedMsg struct {
	Songs   []model.Song
	Elapsed time.Duration
	Err     error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "q":
			if m.state == StateError {
				return m, tea.Quit
			}

		case "enter":
			if m.state == StateInput {
				query := m.textInput.Value()
				if query == m.settings.ExitToken {
					return m, tea.Quit
				}
				m.textInput.SetValue("")
				if strings.TrimSpace(query) != "" {
					m.ask(query)
				}
				return m, nil
			}
		}

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case LoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.songs = msg.Songs
			m.elapsed = msg.Elapsed
			m.state = StateInput
		}
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// ask looks up artist and records the answer.
func (m *Model) ask(artist string) {
	s, ok := songs.FindByArtist(m.songs, artist)
	m.history = append(m.history, Answer{Artist: artist, Song: s, Found: ok})
	// Keep only the latest answers
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// History returns the answered queries, oldest first.
func (m Model) History() []Answer {
	return m.history
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("♪ Song Lookup"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Find a song by artist name"))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewLoading())
	case StateInput:
		b.WriteString(m.viewInput())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Loading %s...", m.settings.InputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Loaded %d songs in %d ms", len(m.songs), m.elapsed.Milliseconds())))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Enter artist name:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	for _, a := range m.history {
		if a.Found {
			b.WriteString(songStyle.Render("♪ " + songs.FoundMessage(a.Artist, a.Song)))
		} else {
			b.WriteString(warningStyle.Render(fmt.Sprintf("✗ %s: %s", a.Artist, songs.LookupNotFound)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateLoading:
		return "esc: quit"
	case StateInput:
		return fmt.Sprintf("enter: search • %s or esc: quit", m.settings.ExitToken)
	case StateError:
		return "q: quit"
	}
	return ""
}

// loadSongs reads the whole table in the background.
func (m Model) loadSongs() tea.Cmd {
	settings := m.settings
	return func() tea.Msg {
		start := time.Now()
		list, err := settings.SongLoader().LoadAll(settings.InputPath)
		return LoadedMsg{Songs: list, Elapsed: time.Since(start), Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
