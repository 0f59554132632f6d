package program

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/fortran/fragment"
)

// Build compiles the statements into fragments, one per top-level statement.
func (f *File) Build(b *fragment.Builder) ([]string, error) {
	c := &compiler{b: b, targets: make(map[string]string)}
	return c.list("statements", f.Statements)
}

// blocks lists the ops that take a nested body.
var blocks = map[string]bool{
	"do":         true,
	"if":         true,
	"open":       true,
	"program":    true,
	"subroutine": true,
	"function":   true,
}

type compiler struct {
	b       *fragment.Builder
	targets map[string]string
}

func (c *compiler) list(path string, stmts []Statement) ([]string, error) {
	out := make([]string, 0, len(stmts))
	for i, s := range stmts {
		frag, err := c.statement(fmt.Sprintf("%s[%d]", path, i), s)
		if err != nil {
			return nil, err
		}
		out = append(out, frag)
	}
	return out, nil
}

// target maps a label to its text. Numeric labels are used verbatim;
// each symbolic name gets its own placeholder.
func (c *compiler) target(name string) string {
	if _, err := strconv.Atoi(name); err == nil {
		return name
	}
	tok, ok := c.targets[name]
	if !ok {
		tok = c.b.Labels().Next()
		c.targets[name] = tok
	}
	return tok
}

func invalid(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidProgram, "%s: %s", path, fmt.Sprintf(format, args...))
}

// require reports the first empty field among fields.
func require(path, op string, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if fields[i+1] == "" {
			return invalid(path, "%s requires %s", op, fields[i])
		}
	}
	return nil
}

func (c *compiler) statement(path string, s Statement) (string, error) {
	b := c.b
	if s.Op != "if" && len(s.Else) > 0 {
		return "", invalid(path, "%s does not take an else branch", s.Op)
	}
	if len(s.Body) > 0 && !blocks[s.Op] {
		return "", invalid(path, "%s does not take a body", s.Op)
	}

	switch s.Op {
	case "raw":
		return s.Text, nil
	case "comment":
		return b.Comment(s.Text), nil
	case "assign":
		if err := require(path, s.Op, "var", s.Var, "expr", s.Expr); err != nil {
			return "", err
		}
		return b.Assign(s.Var, s.Expr), nil
	case "call":
		if err := require(path, s.Op, "name", s.Name); err != nil {
			return "", err
		}
		return b.Call(s.Name, s.Args...), nil
	case "declare":
		if err := require(path, s.Op, "type", s.Type); err != nil {
			return "", err
		}
		return b.Declare(s.Type, s.Args...), nil
	case "common":
		if err := require(path, s.Op, "name", s.Name); err != nil {
			return "", err
		}
		if len(s.Args) == 0 {
			return "", invalid(path, "common requires args")
		}
		return b.Common(s.Name, s.Args...), nil
	case "parameter":
		if len(s.Args) == 0 {
			return "", invalid(path, "parameter requires args")
		}
		return b.Parameter(s.Args...), nil
	case "goto":
		if err := require(path, s.Op, "label", s.Label); err != nil {
			return "", err
		}
		return b.Goto(c.target(s.Label)), nil
	case "ifgoto":
		if err := require(path, s.Op, "cond", s.Cond, "label", s.Label); err != nil {
			return "", err
		}
		return b.IfGoto(s.Cond, c.target(s.Label)), nil
	case "continue":
		if err := require(path, s.Op, "label", s.Label); err != nil {
			return "", err
		}
		return b.Continue(c.target(s.Label)), nil
	case "return":
		return b.Return(), nil
	case "stop":
		return b.Stop(), nil
	case "format":
		if len(s.Format) == 0 {
			return "", invalid(path, "format requires format items")
		}
		if s.Label == "" {
			return b.Format(s.Format...), nil
		}
		return b.FormatAt(c.target(s.Label), s.Format...), nil
	case "close":
		if err := require(path, s.Op, "unit", s.Unit); err != nil {
			return "", err
		}
		return b.Close(s.Unit), nil
	case "read", "write":
		return c.io(path, s)
	}

	body, err := c.list(path+".body", s.Body)
	if err != nil {
		return "", err
	}

	switch s.Op {
	case "do":
		if err := require(path, s.Op, "var", s.Var, "start", s.Start, "end", s.End); err != nil {
			return "", err
		}
		return b.DoStepBlock(s.Var, s.Start, s.End, s.Step, body...), nil
	case "if":
		if err := require(path, s.Op, "cond", s.Cond); err != nil {
			return "", err
		}
		if s.Else == nil {
			return b.IfThenBlock(s.Cond, body...), nil
		}
		els, err := c.list(path+".else", s.Else)
		if err != nil {
			return "", err
		}
		return b.IfThenElseBlock(s.Cond, body, els), nil
	case "open":
		if err := require(path, s.Op, "unit", s.Unit, "file", s.File); err != nil {
			return "", err
		}
		if len(body) == 0 {
			return b.Open(s.Unit, s.File, s.Status), nil
		}
		return b.OpenBlock(s.Unit, s.File, s.Status, body...), nil
	case "program":
		if err := require(path, s.Op, "name", s.Name); err != nil {
			return "", err
		}
		return b.ProgramBlock(s.Name, body...), nil
	case "subroutine":
		if err := require(path, s.Op, "name", s.Name); err != nil {
			return "", err
		}
		return b.SubroutineBlock(s.Name, s.Args, body...), nil
	case "function":
		if err := require(path, s.Op, "name", s.Name); err != nil {
			return "", err
		}
		return b.FunctionBlock(s.Type, s.Name, s.Args, body...), nil
	case "":
		return "", invalid(path, "missing op")
	}
	return "", invalid(path, "unknown op %q", s.Op)
}

// io compiles read and write. With format items the statement gets its own
// format statement; a label refers to an existing one instead.
func (c *compiler) io(path string, s Statement) (string, error) {
	if err := require(path, s.Op, "unit", s.Unit); err != nil {
		return "", err
	}
	if len(s.Format) > 0 && s.Label != "" {
		return "", invalid(path, "%s takes either format or label", s.Op)
	}
	b := c.b
	if len(s.Format) > 0 {
		if s.Op == "read" {
			return b.ReadBlock(s.Unit, s.Format, s.Args...), nil
		}
		return b.WriteBlock(s.Unit, s.Format, s.Args...), nil
	}
	lbl := ""
	if s.Label != "" {
		lbl = c.target(s.Label)
	}
	if s.Op == "read" {
		return b.Read(s.Unit, lbl, s.Args...), nil
	}
	return b.Write(s.Unit, lbl, s.Args...), nil
}
