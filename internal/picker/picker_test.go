package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/cine/internal/model"
)

func batmanResults() []model.MovieSummary {
	return []model.MovieSummary{
		{ID: 272, Title: "Batman Begins", ReleaseDate: "2005-06-10", VoteAverage: 7.7},
		{ID: 414906, Title: "The Batman", ReleaseDate: "2022-03-01", VoteAverage: 7.7},
	}
}

func update(t *testing.T, p Picker, msg tea.Msg) (Picker, tea.Cmd) {
	t.Helper()
	newModel, cmd := p.Update(msg)
	return newModel.(Picker), cmd
}

func TestPicker_InitialState(t *testing.T) {
	p := New(batmanResults(), "batman", 120)

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.movies) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.movies))
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(batmanResults(), "batman", 2)

	p, _ = update(t, p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	// Bottom bound
	p, _ = update(t, p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor to stay at 1, got %d", p.cursor)
	}

	p, _ = update(t, p, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	// Top bound
	p, _ = update(t, p, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(batmanResults(), "batman", 2)
	p.cursor = 1

	p, cmd := update(t, p, tea.KeyMsg{Type: tea.KeyEnter})

	if !p.selected {
		t.Error("expected selected to be true after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}

	got := p.Selected()
	if got == nil || got.ID != 414906 {
		t.Errorf("expected The Batman, got %+v", got)
	}
}

func TestPicker_SelectOnEmptyDoesNothing(t *testing.T) {
	p := New(nil, "zzzz", 0)

	p, cmd := update(t, p, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || p.selected {
		t.Error("expected no selection on empty results")
	}
	if !strings.Contains(p.View(), "No movies found") {
		t.Error("expected empty state message")
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(batmanResults(), "batman", 2)

	p, cmd := update(t, p, tea.KeyMsg{Type: tea.KeyEsc})

	if !p.Cancelled() {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.Selected() != nil {
		t.Error("expected nil selection when cancelled")
	}
}

func TestPicker_View(t *testing.T) {
	p := New(batmanResults(), "batman", 1)
	view := p.View()

	for _, want := range []string{`Results for "batman"`, "1 result", "Batman Begins (2005)", "The Batman (2022)", "★ 7.7"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
