// Package pipeline provides the emission driver for macrofor.
//
// One generation run takes an ordered list of fragments, concatenates the
// non-empty ones, resolves label placeholders, reflows every line under the
// run's dialect profile and persists the result. By centralizing this logic,
// the library API and the CLI behave identically.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: Produce fragments with a fresh [fragment.Builder]
//  2. Resolve: Number placeholders 100, 200, ... in first-appearance order
//  3. Reflow: Lay lines out within the profile's column budget
//  4. Write: Normalize line endings, encode and atomically replace the output
//
// Every run owns its own label allocator, so runs never share numbering and a
// [Runner] can be used from multiple goroutines.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Style: "fixed"}
//	result, err := runner.Execute(ctx, "out/prog.f", func(b *fragment.Builder) ([]string, error) {
//	    return []string{
//	        b.ProgramBlock("demo",
//	            b.DoBlock("i", "1", "10", b.Assign("a(i)", "0")),
//	        ),
//	    }, nil
//	}, opts)
//
// Render in memory without touching the filesystem:
//
//	result, err := runner.Render(ctx, fragments, opts)
//	fmt.Print(result.Text)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/fortran/label"
	"github.com/matzehuels/macrofor/pkg/fortran/reflow"
	"github.com/matzehuels/macrofor/pkg/fortran/style"
	pkgio "github.com/matzehuels/macrofor/pkg/io"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLineEnding terminates every output line unless overridden.
	DefaultLineEnding = LF

	// DefaultEncoding is the character set of the output file.
	DefaultEncoding = pkgio.DefaultEncoding
)

// Line endings accepted by [Options.LineEnding].
const (
	LF   = "\n"
	CRLF = "\r\n"
	CR   = "\r"
)

var lineEndingNames = map[string]string{
	"lf":   LF,
	"crlf": CRLF,
	"cr":   CR,
}

// ParseLineEnding maps "lf", "crlf" or "cr" to its line ending.
func ParseLineEnding(name string) (string, error) {
	if le, ok := lineEndingNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return le, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid line ending: %q (must be one of: lf, crlf, cr)", name)
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one generation run.
type Options struct {
	// Style names the dialect ("fixed", "free" or an alias). It takes
	// precedence over Profile when set.
	Style string `json:"style,omitempty"`

	// Profile is the explicit dialect profile. The zero value means the
	// process-wide selection from [style.Current].
	Profile style.Profile `json:"-"`

	// Encoding names the output character set.
	Encoding string `json:"encoding,omitempty"`

	// LineEnding terminates every output line, including the last one.
	LineEnding string `json:"line_ending,omitempty"`

	// MaxLineLength overrides the profile's budget. Zero or negative
	// disables reflow.
	MaxLineLength *int `json:"max_line_length,omitempty"`

	// Policy orders the delimiters long lines are split after.
	Policy reflow.Policy `json:"policy,omitempty"`

	// AllowUnresolved passes malformed placeholders through instead of
	// failing the run.
	AllowUnresolved bool `json:"allow_unresolved,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	encoder   encoding.Encoding
	validated bool
}

// Result contains the outputs of a generation run.
type Result struct {
	// RunID correlates log lines and hook events of one run.
	RunID string

	// Path is the destination, empty for in-memory renders.
	Path string

	// Text is the final output, line endings included.
	Text string

	// Labels lists the resolved placeholders in first-appearance order.
	Labels []label.Assignment

	// Profile is the effective profile of the run.
	Profile style.Profile

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Fragments   int
	Labels      int
	Logical     int
	Physical    int
	Split       int
	Bytes       int
	BuildTime   time.Duration
	ResolveTime time.Duration
	ReflowTime  time.Duration
	WriteTime   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the effective profile and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset fields. It never fails; an unknown Style is
// reported by [Options.Validate].
func (o *Options) SetDefaults() {
	if o.Profile.CommentMarker == 0 && o.Style == "" {
		o.Profile = style.Current()
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.LineEnding == "" {
		o.LineEnding = DefaultLineEnding
	}
	if o.Policy == nil {
		o.Policy = reflow.DefaultPolicy()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options and settles the effective profile.
func (o *Options) Validate() error {
	if o.Style != "" {
		p, err := style.Select(o.Style)
		if err != nil {
			return err
		}
		o.Profile = p
	}
	if o.MaxLineLength != nil {
		o.Profile = o.Profile.WithMaxLineLength(*o.MaxLineLength)
	}
	if err := o.Profile.Validate(); err != nil {
		return err
	}

	switch o.LineEnding {
	case LF, CRLF, CR:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid line ending %q", o.LineEnding)
	}

	enc, err := pkgio.Encoder(o.Encoding)
	if err != nil {
		return err
	}
	o.encoder = enc
	return nil
}

// Reflows reports whether the effective budget enables line reflow.
func (o *Options) Reflows() bool {
	return o.Profile.MaxLineLength > 0
}
