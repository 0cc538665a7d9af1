package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/libra/pkg/registry"
)

var pickerPackages = []registry.Package{
	{Source: registry.SourceNPM, Name: "serde", Version: "0.0.1", Description: "npm squatter"},
	{Source: registry.SourceJSR, Name: "@std/path", Version: "1.0.8"},
	{Source: registry.SourceCrates, Name: "serde", Version: "1.0.210", Description: "A serialization framework"},
}

func press(m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestPackageListNavigation(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		wantCursor int
	}{
		{"start", nil, 0},
		{"down", []string{"down"}, 1},
		{"vim keys", []string{"j", "j", "k"}, 1},
		{"clamped at bottom", []string{"down", "down", "down", "down"}, 2},
		{"clamped at top", []string{"up", "k"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := press(NewPackageListModel(pickerPackages), tt.keys...)
			if got := m.(PackageListModel).Cursor; got != tt.wantCursor {
				t.Errorf("Cursor = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestPackageListSelect(t *testing.T) {
	m, cmd := press(NewPackageListModel(pickerPackages), "down", "down", "enter")
	sel := m.(PackageListModel).Selected
	if sel == nil || sel.Source != registry.SourceCrates || sel.Name != "serde" {
		t.Fatalf("Selected = %+v, want crates serde", sel)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPackageListQuit(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m, cmd := press(NewPackageListModel(pickerPackages), key)
		if m.(PackageListModel).Selected != nil {
			t.Errorf("%s: Selected should be nil", key)
		}
		if cmd == nil {
			t.Errorf("%s: should quit", key)
		}
	}
}

func TestPackageListEmpty(t *testing.T) {
	m, cmd := press(NewPackageListModel(nil), "enter")
	if m.(PackageListModel).Selected != nil || cmd == nil {
		t.Error("enter on an empty list should quit without a selection")
	}
}

func TestPackageListScroll(t *testing.T) {
	var pkgs []registry.Package
	for i := 0; i < 20; i++ {
		pkgs = append(pkgs, registry.Package{Source: registry.SourceNPM, Name: strings.Repeat("x", i+1)})
	}
	m, _ := NewPackageListModel(pkgs).Update(tea.WindowSizeMsg{Height: 11})
	keys := make([]string, 8)
	for i := range keys {
		keys[i] = "down"
	}
	m, _ = press(m, keys...)

	pl := m.(PackageListModel)
	if pl.Height != 5 || pl.Offset != 4 {
		t.Errorf("Height = %d Offset = %d, want 5 and 4", pl.Height, pl.Offset)
	}
}

func TestPackageListView(t *testing.T) {
	view := NewPackageListModel(pickerPackages).View()
	for _, want := range []string{"Select Package", "@std/path", "crates.io", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
