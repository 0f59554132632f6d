// Package program loads declarative descriptions of Fortran programs.
//
// A description lists statements by operation name, with nested bodies for
// loops, conditionals, I/O blocks and program units. It is written in TOML
// or YAML and compiled into fragments through a [fragment.Builder]:
//
//	style = "fixed"
//	output = "build/zero.f"
//
//	[[statements]]
//	op = "program"
//	name = "zero"
//
//	  [[statements.body]]
//	  op = "do"
//	  var = "i"
//	  start = "1"
//	  end = "100"
//
//	    [[statements.body.body]]
//	    op = "assign"
//	    var = "v(i)"
//	    expr = "0.0"
//
// Labels are either numeric, used verbatim, or symbolic names. Every
// distinct symbolic name in a file is bound to one placeholder, so a goto
// and the continue it targets resolve to the same statement label.
package program

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/pipeline"
)

// Format identifies the syntax of a description.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is a decoded program description.
type File struct {
	Style         string `toml:"style" yaml:"style"`
	Output        string `toml:"output" yaml:"output"`
	MaxLineLength *int   `toml:"max_line_length" yaml:"max_line_length"`
	Encoding      string `toml:"encoding" yaml:"encoding"`
	LineEnding    string `toml:"line_ending" yaml:"line_ending"`

	Statements []Statement `toml:"statements" yaml:"statements"`
}

// Statement is one operation. Which fields apply depends on Op.
type Statement struct {
	Op     string   `toml:"op" yaml:"op"`
	Name   string   `toml:"name" yaml:"name"`
	Text   string   `toml:"text" yaml:"text"`
	Type   string   `toml:"type" yaml:"type"`
	Var    string   `toml:"var" yaml:"var"`
	Expr   string   `toml:"expr" yaml:"expr"`
	Cond   string   `toml:"cond" yaml:"cond"`
	Label  string   `toml:"label" yaml:"label"`
	Args   []string `toml:"args" yaml:"args"`
	Start  string   `toml:"start" yaml:"start"`
	End    string   `toml:"end" yaml:"end"`
	Step   string   `toml:"step" yaml:"step"`
	Unit   string   `toml:"unit" yaml:"unit"`
	File   string   `toml:"file" yaml:"file"`
	Status string   `toml:"status" yaml:"status"`
	Format []string `toml:"format" yaml:"format"`

	Body []Statement `toml:"body" yaml:"body"`
	Else []Statement `toml:"else" yaml:"else"`
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidProgram, "unsupported program file %q (want .toml, .yaml or .yml)", path)
}

// Load reads and decodes the description at path.
func Load(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "program file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProgram, err, "read %s", path)
	}
	f, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Decode parses data in the given format. Unknown keys are rejected.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProgram, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidProgram, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidProgram, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidProgram, "unknown program format %q", format)
	}
	return &f, nil
}

// Options returns the run options the description asks for.
// Unset fields are left for [pipeline.Options.SetDefaults].
func (f *File) Options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Style:         f.Style,
		Encoding:      f.Encoding,
		MaxLineLength: f.MaxLineLength,
	}
	if f.LineEnding != "" {
		le, err := pipeline.ParseLineEnding(f.LineEnding)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.LineEnding = le
	}
	return opts, nil
}
