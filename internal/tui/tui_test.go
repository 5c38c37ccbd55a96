package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/song-tools/internal/config"
	"github.com/handiism/song-tools/internal/model"
)

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(config.DefaultSettings())

	next, _ := m.Update(LoadedMsg{
		Songs: []model.Song{
			{Name: "Кукушка", Artists: []string{"Кино"}},
			{Name: "Bohemian Rhapsody", Artists: []string{"Queen"}},
		},
		Elapsed: 12 * time.Millisecond,
	})
	return next.(Model)
}

func submit(m Model, query string) (Model, tea.Cmd) {
	m.textInput.SetValue(query)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestModel_LoadedSwitchesToInput(t *testing.T) {
	m := loadedModel(t)
	if m.State() != StateInput {
		t.Fatalf("State() = %v, want StateInput", m.State())
	}
	if !strings.Contains(m.View(), "Loaded 2 songs") {
		t.Errorf("View() should report loaded songs:\n%s", m.View())
	}
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel(config.DefaultSettings())
	next, _ := m.Update(LoadedMsg{Err: errors.New("no such file")})
	m = next.(Model)

	if m.State() != StateError {
		t.Fatalf("State() = %v, want StateError", m.State())
	}
	if !strings.Contains(m.View(), "no such file") {
		t.Errorf("View() should show the error")
	}
}

func TestModel_Lookup(t *testing.T) {
	m := loadedModel(t)

	m, _ = submit(m, "Queen")
	m, _ = submit(m, "ДДТ")

	h := m.History()
	if len(h) != 2 {
		t.Fatalf("got %d answers, want 2", len(h))
	}
	if !h[0].Found || h[0].Song.Name != "Bohemian Rhapsody" {
		t.Errorf("first answer = %+v", h[0])
	}
	if h[1].Found {
		t.Errorf("second answer should be not found: %+v", h[1])
	}
	if m.textInput.Value() != "" {
		t.Errorf("input not cleared: %q", m.textInput.Value())
	}
}

func TestModel_BlankQueryIgnored(t *testing.T) {
	m := loadedModel(t)
	m, _ = submit(m, "   ")

	if len(m.History()) != 0 {
		t.Errorf("blank query recorded: %+v", m.History())
	}
}

func TestModel_ExitToken(t *testing.T) {
	m := loadedModel(t)
	m, cmd := submit(m, "0")

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit token should quit")
	}
	if len(m.History()) != 0 {
		t.Error("exit token should not be looked up")
	}
}

func TestModel_HistoryLimit(t *testing.T) {
	m := loadedModel(t)
	for i := 0; i < maxHistory+5; i++ {
		m, _ = submit(m, "Queen")
	}
	if len(m.History()) != maxHistory {
		t.Errorf("history length = %d, want %d", len(m.History()), maxHistory)
	}
}

func TestLoadSongs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	content := "streams;artist_name;track_name;date\n1;Кино;Кукушка;01.01.1990\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings := config.DefaultSettings()
	settings.InputPath = path

	msg, ok := NewModel(settings).loadSongs()().(LoadedMsg)
	if !ok {
		t.Fatal("loadSongs should produce LoadedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("load error: %v", msg.Err)
	}
	if len(msg.Songs) != 1 || msg.Songs[0].Name != "Кукушка" {
		t.Errorf("songs = %+v", msg.Songs)
	}
}
