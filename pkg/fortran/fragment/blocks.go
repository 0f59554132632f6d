package fragment

import "strings"

// indent prefixes every non-empty line of each body fragment with the
// profile's block indent. Empty fragments are dropped.
func (b *Builder) indent(body []string) []string {
	out := make([]string, 0, len(body))
	for _, f := range body {
		if f == "" {
			continue
		}
		if b.profile.BlockIndent == "" {
			out = append(out, f)
			continue
		}
		lines := strings.Split(f, "\n")
		for i, line := range lines {
			if line != "" {
				lines[i] = b.profile.BlockIndent + line
			}
		}
		out = append(out, strings.Join(lines, "\n"))
	}
	return out
}

func (b *Builder) block(open string, body []string, closing ...string) string {
	parts := append([]string{open}, b.indent(body)...)
	return Join(append(parts, closing...)...)
}

// end closes a subprogram with its kind and name.
func (b *Builder) end(kind, name string) string {
	return "end " + kind + " " + strings.TrimSpace(name)
}

// ProgramBlock wraps body in a main program unit closed by a bare end.
func (b *Builder) ProgramBlock(name string, body ...string) string {
	return b.block(b.Program(name), body, b.End())
}

// SubroutineBlock wraps body in a subroutine with its commented header.
func (b *Builder) SubroutineBlock(name string, args []string, body ...string) string {
	return b.block(b.Subroutine(name, args...), body, b.end("subroutine", name))
}

// FunctionBlock wraps body in a function with its commented header.
func (b *Builder) FunctionBlock(typ, name string, args []string, body ...string) string {
	return b.block(b.Function(typ, name, args...), body, b.end("function", name))
}

// DoBlock returns a labeled loop over body. The loop header and the closing
// continue share one freshly minted placeholder.
func (b *Builder) DoBlock(index, start, end string, body ...string) string {
	return b.DoStepBlock(index, start, end, "", body...)
}

// DoStepBlock is [Builder.DoBlock] with an explicit step.
func (b *Builder) DoStepBlock(index, start, end, step string, body ...string) string {
	l := b.labels.Next()
	return b.block(b.Do(l, index, start, end, step), body, b.Continue(l))
}

func (b *Builder) IfThenBlock(cond string, body ...string) string {
	return b.block(b.IfThen(cond), body, b.EndIf())
}

// IfThenElseBlock returns a two-branch conditional. An empty else branch
// still emits the else keyword.
func (b *Builder) IfThenElseBlock(cond string, then, els []string) string {
	return Join(
		b.block(b.IfThen(cond), then),
		b.block(b.Else(), els, b.EndIf()),
	)
}

// OpenBlock opens unit around body and closes it afterwards.
func (b *Builder) OpenBlock(unit, file, status string, body ...string) string {
	return b.block(b.Open(unit, file, status), body, b.Close(unit))
}

// ReadBlock returns a formatted read and the format statement it refers to.
func (b *Builder) ReadBlock(unit string, formats []string, vars ...string) string {
	l := b.labels.Next()
	return Join(b.Read(unit, l, vars...), b.FormatAt(l, formats...))
}

// WriteBlock returns a formatted write and the format statement it refers to.
func (b *Builder) WriteBlock(unit string, formats []string, vars ...string) string {
	l := b.labels.Next()
	return Join(b.Write(unit, l, vars...), b.FormatAt(l, formats...))
}
