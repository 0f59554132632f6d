package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func numbered(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("      x = 1\n")
	}
	return b.String()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m PreviewModel, msgs ...tea.Msg) PreviewModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(PreviewModel)
	}
	return m
}

func TestNewPreviewModelLines(t *testing.T) {
	m := NewPreviewModel("a.f", "one\r\ntwo\r\n", 72)
	if diff := cmp.Diff([]string{"one", "two"}, m.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if empty := NewPreviewModel("a.f", "", 72); len(empty.Lines) != 0 {
		t.Errorf("empty text gave %d lines", len(empty.Lines))
	}
}

func TestPreviewModelScroll(t *testing.T) {
	m := NewPreviewModel("a.f", numbered(30), 72)
	m = update(m, tea.WindowSizeMsg{Width: 80, Height: 16})
	if m.Height != 10 {
		t.Fatalf("Height = %d, want 10", m.Height)
	}

	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"up at top stays", []string{"up"}, 0},
		{"down", []string{"down", "j"}, 2},
		{"page down", []string{"f"}, 10},
		{"end", []string{"G"}, 20},
		{"past end clamps", []string{"G", "down", "f"}, 20},
		{"home", []string{"G", "g"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m
			for _, k := range tt.keys {
				got = update(got, key(k))
			}
			if got.Offset != tt.want {
				t.Errorf("Offset = %d, want %d", got.Offset, tt.want)
			}
		})
	}
}

func TestPreviewModelMinHeight(t *testing.T) {
	m := update(NewPreviewModel("a.f", numbered(3), 72), tea.WindowSizeMsg{Height: 4})
	if m.Height != minPagerHeight {
		t.Errorf("Height = %d, want %d", m.Height, minPagerHeight)
	}
}

func TestPreviewModelQuit(t *testing.T) {
	m := NewPreviewModel("a.f", numbered(3), 72)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewModelView(t *testing.T) {
	long := "c     " + strings.Repeat("y", 70)
	m := NewPreviewModel("heat.f", "      x = 1\n"+long+"\n", 72)
	view := m.View()

	for _, want := range []string{"heat.f", "1234567890", "      x = 1", "[1-2/2]", "1 over 72 columns"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if m.Overflowing() != 1 {
		t.Errorf("Overflowing() = %d, want 1", m.Overflowing())
	}
}

func TestPreviewModelNoBudget(t *testing.T) {
	m := NewPreviewModel("a.f", strings.Repeat("z", 200)+"\n", 0)
	if m.Overflowing() != 0 {
		t.Error("budget 0 should not flag lines")
	}
	if w := m.width(); w != 200 {
		t.Errorf("width() = %d, want 200", w)
	}
}

func TestRuler(t *testing.T) {
	got := ruler(23)
	want := []string{
		"         1         2   ",
		"12345678901234567890123",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ruler mismatch (-want +got):\n%s", diff)
	}
}
