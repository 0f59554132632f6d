package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pager styles
var (
	pagerGutterStyle = lipgloss.NewStyle().Foreground(colorDim)
	pagerRulerStyle  = lipgloss.NewStyle().Foreground(colorGray)
	pagerDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// minPagerHeight is the smallest number of source lines shown at once.
const minPagerHeight = 5

// =============================================================================
// PreviewModel - Generated source pager
// =============================================================================

// PreviewModel is the bubbletea model for paging through generated source.
// Columns past Budget are highlighted.
type PreviewModel struct {
	Title  string
	Lines  []string
	Budget int
	Offset int
	Height int
}

// NewPreviewModel creates a pager over text. Budget zero disables highlighting.
func NewPreviewModel(title, text string, budget int) PreviewModel {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return PreviewModel{
		Title:  title,
		Lines:  lines,
		Budget: budget,
		Height: 20,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset--
		case "down", "j":
			m.Offset++
		case "pgup", "b":
			m.Offset -= m.Height
		case "pgdown", "f", " ":
			m.Offset += m.Height
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < minPagerHeight {
			m.Height = minPagerHeight
		}
	}
	m.Offset = clamp(m.Offset, 0, m.maxOffset())
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(pagerDimStyle.Render("↑/↓ scroll  pgup/pgdn page  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	gutter := strings.Repeat(" ", gutterWidth(len(m.Lines)))
	for _, r := range ruler(m.width()) {
		b.WriteString(pagerGutterStyle.Render(gutter+" │ ") + pagerRulerStyle.Render(r))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.Lines))
	for i := m.Offset; i < end; i++ {
		num := fmt.Sprintf("%*d", len(gutter), i+1)
		b.WriteString(pagerGutterStyle.Render(num+" │ ") + m.renderLine(m.Lines[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("  [%d-%d/%d]", min(m.Offset+1, end), end, len(m.Lines))
	if n := m.Overflowing(); n > 0 {
		status += StyleOverflow.Render(fmt.Sprintf("  %d over %d columns", n, m.Budget))
	}
	b.WriteString(pagerDimStyle.Render(status))

	return b.String()
}

// Overflowing counts the lines wider than the budget.
func (m PreviewModel) Overflowing() int {
	n := 0
	for _, l := range m.Lines {
		if m.over(l) {
			n++
		}
	}
	return n
}

func (m PreviewModel) over(line string) bool {
	return m.Budget > 0 && utf8.RuneCountInString(line) > m.Budget
}

func (m PreviewModel) renderLine(line string) string {
	if !m.over(line) {
		return line
	}
	runes := []rune(line)
	return string(runes[:m.Budget]) + StyleOverflow.Render(string(runes[m.Budget:]))
}

// width is the ruler width: the budget or the longest line, whichever is larger.
func (m PreviewModel) width() int {
	w := m.Budget
	for _, l := range m.Lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	return w
}

func (m PreviewModel) maxOffset() int {
	return max(len(m.Lines)-m.Height, 0)
}

// =============================================================================
// Helpers
// =============================================================================

// ruler returns a tens row and a units row covering columns 1..width.
func ruler(width int) []string {
	var tens, units strings.Builder
	for col := 1; col <= width; col++ {
		if col%10 == 0 {
			tens.WriteString(fmt.Sprint(col / 10 % 10))
		} else {
			tens.WriteByte(' ')
		}
		units.WriteString(fmt.Sprint(col % 10))
	}
	return []string{tens.String(), units.String()}
}

func gutterWidth(n int) int {
	return max(len(fmt.Sprint(n)), 3)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
