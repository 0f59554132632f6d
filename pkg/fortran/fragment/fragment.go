package fragment

import (
	"strings"

	"github.com/matzehuels/macrofor/pkg/fortran/label"
	"github.com/matzehuels/macrofor/pkg/fortran/style"
)

// DefaultOpenStatus is the status used by [Builder.Open] when none is given.
const DefaultOpenStatus = "unknown"

// Builder produces fragments for one generation run.
type Builder struct {
	profile style.Profile
	labels  *label.Allocator
}

// New returns a builder for p that mints placeholders from a.
// A nil allocator gets a fresh one.
func New(p style.Profile, a *label.Allocator) *Builder {
	if a == nil {
		a = label.NewAllocator()
	}
	return &Builder{profile: p, labels: a}
}

// Profile returns the profile the builder formats for.
func (b *Builder) Profile() style.Profile { return b.profile }

// Labels returns the allocator the builder mints placeholders from.
func (b *Builder) Labels() *label.Allocator { return b.labels }

// List trims every item and joins them with ", ".
func List(items ...string) string {
	trimmed := make([]string, len(items))
	for i, item := range items {
		trimmed[i] = strings.TrimSpace(item)
	}
	return strings.Join(trimmed, ", ")
}

// Join concatenates the non-empty fragments, one per line.
func Join(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f == "" {
			continue
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, "\n")
}

func (b *Builder) marker() string {
	return string(b.profile.CommentMarker)
}

// Comment returns a comment line using the profile's marker.
func (b *Builder) Comment(text string) string {
	if b.profile.IsFixed() {
		return b.marker() + "     " + text
	}
	return b.marker() + " " + text
}

// header is the three-line banner placed before subprogram statements.
func (b *Builder) header(kind, name string) string {
	m := b.marker()
	return m + "\n" + m + " " + kind + " " + name + "\n" + m
}

func (b *Builder) Assign(variable, expr string) string {
	return strings.TrimSpace(variable) + " = " + strings.TrimSpace(expr)
}

func (b *Builder) Call(name string, args ...string) string {
	return "call " + strings.TrimSpace(name) + "(" + List(args...) + ")"
}

func (b *Builder) Close(unit string) string {
	return "close(" + strings.TrimSpace(unit) + ")"
}

func (b *Builder) Common(name string, vars ...string) string {
	return "common /" + strings.TrimSpace(name) + "/ " + List(vars...)
}

func (b *Builder) Continue(label string) string {
	return strings.TrimSpace(label) + " continue"
}

// Declare returns a type declaration. An implicit typing rule is emitted in
// its compact form, so Declare("implicit real*8", "a-h", "o-z") gives
// "implicit real*8(a-h,o-z)".
func (b *Builder) Declare(typ string, names ...string) string {
	typ = strings.TrimSpace(typ)
	if len(names) == 0 {
		return typ
	}
	if strings.HasPrefix(strings.ToLower(typ), "implicit") {
		return typ + "(" + strings.ReplaceAll(List(names...), ", ", ",") + ")"
	}
	return typ + " " + List(names...)
}

// Do returns a loop header. Without a label the loop is closed by an
// "end do"; with one it is closed by a labeled continue. An empty step is
// omitted.
func (b *Builder) Do(label, index, start, end, step string) string {
	index = strings.TrimSpace(index)
	label = strings.TrimSpace(label)
	var s string
	if label == "" {
		s = "do " + index + " = " + List(start, end)
	} else {
		s = "do " + label + " " + index + "=" + List(start, end)
	}
	if step = strings.TrimSpace(step); step != "" {
		s += ", " + step
	}
	return s
}

func (b *Builder) EndDo() string { return "end do" }

func (b *Builder) IfThen(cond string) string {
	return "if (" + strings.TrimSpace(cond) + ") then"
}

func (b *Builder) ElseIf(cond string) string {
	return "else if (" + strings.TrimSpace(cond) + ") then"
}

func (b *Builder) Else() string  { return "else" }
func (b *Builder) EndIf() string { return "end if" }

// Format mints a placeholder and returns a format statement labeled with it.
func (b *Builder) Format(items ...string) string {
	return b.FormatAt(b.labels.Next(), items...)
}

// FormatAt returns a format statement carrying an existing label.
func (b *Builder) FormatAt(label string, items ...string) string {
	return strings.TrimSpace(label) + " format (" + List(items...) + ")"
}

// Function returns a function statement preceded by a commented header.
// An empty type gives an untyped function statement.
func (b *Builder) Function(typ, name string, args ...string) string {
	name = strings.TrimSpace(name)
	stmt := "function " + name + "(" + List(args...) + ")"
	if typ = strings.TrimSpace(typ); typ != "" {
		stmt = typ + " " + stmt
	}
	return b.header("FUNCTION", name) + "\n" + stmt
}

// Subroutine returns a subroutine statement preceded by a commented header.
func (b *Builder) Subroutine(name string, args ...string) string {
	name = strings.TrimSpace(name)
	return b.header("SUBROUTINE", name) + "\n" +
		"subroutine " + name + "(" + List(args...) + ")"
}

func (b *Builder) Goto(label string) string {
	return "goto " + strings.TrimSpace(label)
}

func (b *Builder) IfGoto(cond, label string) string {
	return "if (" + strings.TrimSpace(cond) + ") goto " + strings.TrimSpace(label)
}

// Open returns an open statement. The file name is quoted; an empty status
// becomes [DefaultOpenStatus].
func (b *Builder) Open(unit, file, status string) string {
	if status = strings.TrimSpace(status); status == "" {
		status = DefaultOpenStatus
	}
	return "open (unit=" + strings.TrimSpace(unit) +
		", file='" + strings.TrimSpace(file) +
		"', status='" + status + "')"
}

func (b *Builder) Parameter(items ...string) string {
	return "parameter (" + List(items...) + ")"
}

func (b *Builder) Program(name string) string {
	return "program " + strings.TrimSpace(name)
}

// Read returns a read statement. An empty label gives unformatted input.
func (b *Builder) Read(unit, label string, vars ...string) string {
	return transfer("read", unit, label, vars)
}

// Write returns a write statement. An empty label gives unformatted output.
func (b *Builder) Write(unit, label string, vars ...string) string {
	return transfer("write", unit, label, vars)
}

func transfer(verb, unit, label string, vars []string) string {
	stmt := verb + " " + control(unit, label)
	if list := List(vars...); list != "" {
		stmt += " " + list
	}
	return stmt
}

func control(unit, label string) string {
	unit = strings.TrimSpace(unit)
	if label = strings.TrimSpace(label); label == "" {
		return "(" + unit + ")"
	}
	return "(" + unit + ", " + label + ")"
}

func (b *Builder) Return() string { return "return" }
func (b *Builder) Stop() string   { return "stop" }
func (b *Builder) End() string    { return "end" }
