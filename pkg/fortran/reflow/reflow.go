package reflow

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/macrofor/pkg/fortran/style"
)

// Kind tags a logical line.
type Kind int

const (
	Blank Kind = iota
	Comment
	Labeled
	Statement
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	case Labeled:
		return "labeled"
	default:
		return "statement"
	}
}

// Line is one classified logical line. Indent holds everything before the
// statement body: the label field and column padding in the fixed dialect,
// leading whitespace in the free dialect.
type Line struct {
	Kind   Kind
	Label  string
	Indent string
	Body   string
}

// Text returns the line laid out on a single physical line.
func (l Line) Text() string {
	return l.Indent + l.Body
}

// Stats counts what a reflow pass did.
type Stats struct {
	Logical  int // logical lines processed
	Physical int // physical lines emitted
	Split    int // logical lines cut into more than one physical line
}

var labeled = regexp.MustCompile(`^(\d+)\s+(.*)$`)

// assignsC matches an assignment to a variable named c, which the fixed
// dialect would otherwise read as a comment.
var assignsC = regexp.MustCompile(`^[cC]\s*(\([^)]*\))?\s*=`)

// Classify tags raw and computes its column layout under p.
func Classify(raw string, p style.Profile) Line {
	trimmed := strings.TrimLeft(raw, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return Line{Kind: Blank, Body: raw}
	}
	lead := raw[:len(raw)-len(trimmed)]

	if isComment(trimmed, p) {
		if p.IsFixed() {
			return Line{Kind: Comment, Body: trimmed}
		}
		return Line{Kind: Comment, Indent: lead, Body: trimmed}
	}

	if m := labeled.FindStringSubmatch(trimmed); m != nil {
		if p.IsFixed() {
			return Line{Kind: Labeled, Label: m[1], Indent: labelField(m[1]), Body: m[2]}
		}
		return Line{Kind: Labeled, Label: m[1], Indent: lead, Body: trimmed}
	}

	indent := lead
	if p.IsFixed() && len(lead) < style.StatementColumn-1 {
		indent = strings.Repeat(" ", style.StatementColumn-1)
	}
	return Line{Kind: Statement, Indent: indent, Body: trimmed}
}

// labelField right-justifies label in columns 1-5 and leaves column 6 blank.
// Labels wider than the field are kept whole.
func labelField(label string) string {
	pad := style.LabelWidth - len(label)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + label + " "
}

func isComment(trimmed string, p style.Profile) bool {
	c := trimmed[0]
	if !p.IsCommentMarker(c) {
		return false
	}
	// A letter marker only starts a comment when it stands alone,
	// otherwise "call" or "continue" would qualify.
	if c == 'c' || c == 'C' {
		if assignsC.MatchString(trimmed) {
			return false
		}
		return len(trimmed) == 1 || trimmed[1] == ' ' || trimmed[1] == '\t'
	}
	return true
}

// Layout returns the physical lines for l under p and policy.
func Layout(l Line, p style.Profile, policy Policy) []string {
	width := p.MaxLineLength
	if l.Kind == Blank {
		return []string{l.Body}
	}
	full := l.Text()
	if l.Kind == Comment || width <= 0 || utf8.RuneCountInString(full) <= width {
		return []string{full}
	}

	suffix := p.ContinuationSuffix()
	cont := p.ContinuationPrefix(leadingSpace(l.Indent))
	prefix := l.Indent
	body := []rune(l.Body)

	var out []string
	for {
		prefixLen := utf8.RuneCountInString(prefix)
		if prefixLen+len(body) <= width {
			break
		}
		avail := width - prefixLen - utf8.RuneCountInString(suffix)
		if avail < 1 {
			avail = 1
		}
		if avail >= len(body) {
			break
		}
		n := policy.cut(body[:avail])
		out = append(out, prefix+string(body[:n])+suffix)
		body = body[n:]
		prefix = cont
	}
	return append(out, prefix+string(body))
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// Reflow lays out every line of text under p. A non-positive budget returns
// text unchanged. A nil policy uses [DefaultPolicy].
func Reflow(text string, p style.Profile, policy Policy) (string, Stats) {
	var stats Stats
	if p.MaxLineLength <= 0 {
		return text, stats
	}
	if policy == nil {
		policy = DefaultPolicy()
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		phys := Layout(Classify(raw, p), p, policy)
		stats.Logical++
		stats.Physical += len(phys)
		if len(phys) > 1 {
			stats.Split++
		}
		out = append(out, phys...)
	}
	return strings.Join(out, "\n"), stats
}
