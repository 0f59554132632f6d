// Package style defines the two Fortran dialect profiles macrofor emits.
//
// A [Profile] fixes the comment marker, the line-length budget and the
// indentation used for nested blocks. The fixed profile follows Fortran 77
// fixed form: comments in column 1, labels in columns 1-5, the continuation
// marker in column 6 and statements from column 7. The free profile follows
// Fortran 90 free form, where only a length budget and a trailing '&' apply.
//
// Profiles are plain values. Pass the one you want to every stage of a
// generation run; [Current] and [Set] exist for callers that prefer a single
// process-wide selection.
package style

import (
	"strings"
	"sync"

	"github.com/matzehuels/macrofor/pkg/errors"
)

// Dialect selects one of the two output conventions.
type Dialect int

const (
	// Fixed is the column-oriented Fortran 77 layout.
	Fixed Dialect = iota
	// Free is the Fortran 90 free-form layout.
	Free
)

func (d Dialect) String() string {
	if d == Free {
		return "free"
	}
	return "fixed"
}

// Default budgets and markers for each dialect.
const (
	FixedMaxLineLength = 72
	FreeMaxLineLength  = 132
	FreeMinLineLength  = 80

	FixedCommentMarker = 'c'
	FreeCommentMarker  = '!'

	// ContinuationMarker is used by both dialects.
	ContinuationMarker = '&'

	// LabelWidth is the width of the fixed-form label field (columns 1-5).
	LabelWidth = 5
	// StatementColumn is the 1-based column fixed-form statements start at.
	StatementColumn = 7
)

// Profile is the formatting configuration of one generation run.
type Profile struct {
	Dialect       Dialect
	CommentMarker byte
	MaxLineLength int
	BlockIndent   string
}

// FixedProfile returns the default fixed-form profile.
func FixedProfile() Profile {
	return Profile{
		Dialect:       Fixed,
		CommentMarker: FixedCommentMarker,
		MaxLineLength: FixedMaxLineLength,
		BlockIndent:   "",
	}
}

// FreeProfile returns the default free-form profile.
func FreeProfile() Profile {
	return Profile{
		Dialect:       Free,
		CommentMarker: FreeCommentMarker,
		MaxLineLength: FreeMaxLineLength,
		BlockIndent:   "  ",
	}
}

var aliases = map[string]Dialect{
	"fixed":     Fixed,
	"f77":       Fixed,
	"fortran77": Fixed,
	"legacy":    Fixed,
	"free":      Free,
	"f90":       Free,
	"fortran90": Free,
	"modern":    Free,
}

// Names returns the recognised dialect names for each dialect, in a stable order.
func Names(d Dialect) []string {
	if d == Free {
		return []string{"free", "f90", "fortran90", "modern"}
	}
	return []string{"fixed", "f77", "fortran77", "legacy"}
}

// Select returns the default profile for the named dialect.
// Names are matched case-insensitively after trimming.
func Select(name string) (Profile, error) {
	d, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeInvalidDialect,
			"unknown dialect %q (must be one of: fixed, f77, free, f90)", name)
	}
	return ForDialect(d), nil
}

// ForDialect returns the default profile of d.
func ForDialect(d Dialect) Profile {
	if d == Free {
		return FreeProfile()
	}
	return FixedProfile()
}

// WithMaxLineLength returns a copy of p with the budget replaced.
// Zero or negative values disable reflow.
func (p Profile) WithMaxLineLength(n int) Profile {
	p.MaxLineLength = n
	return p
}

// IsFixed reports whether p uses the fixed-form layout.
func (p Profile) IsFixed() bool { return p.Dialect == Fixed }

// Validate checks the dialect invariants of p.
func (p Profile) Validate() error {
	switch p.Dialect {
	case Fixed:
		if p.CommentMarker != FixedCommentMarker {
			return errors.New(errors.ErrCodeInvalidDialect, "fixed dialect requires comment marker %q, got %q", FixedCommentMarker, p.CommentMarker)
		}
		if p.MaxLineLength > FixedMaxLineLength {
			return errors.New(errors.ErrCodeInvalidDialect, "fixed dialect line length %d exceeds %d", p.MaxLineLength, FixedMaxLineLength)
		}
		if p.MaxLineLength > 0 && p.MaxLineLength < StatementColumn {
			return errors.New(errors.ErrCodeInvalidDialect, "fixed dialect line length %d leaves no statement columns", p.MaxLineLength)
		}
	case Free:
		if p.CommentMarker != FreeCommentMarker {
			return errors.New(errors.ErrCodeInvalidDialect, "free dialect requires comment marker %q, got %q", FreeCommentMarker, p.CommentMarker)
		}
		if p.MaxLineLength > 0 && p.MaxLineLength < FreeMinLineLength {
			return errors.New(errors.ErrCodeInvalidDialect, "free dialect line length %d is below %d", p.MaxLineLength, FreeMinLineLength)
		}
	default:
		return errors.New(errors.ErrCodeInvalidDialect, "unknown dialect %d", int(p.Dialect))
	}
	return nil
}

// ContinuationPrefix returns the text that starts a continuation line.
// indent is the leading whitespace of the logical line being continued.
func (p Profile) ContinuationPrefix(indent string) string {
	if p.IsFixed() {
		return strings.Repeat(" ", StatementColumn-2) + string(ContinuationMarker)
	}
	return indent + string(ContinuationMarker)
}

// ContinuationSuffix returns the text that ends every non-final physical line.
func (p Profile) ContinuationSuffix() string {
	if p.IsFixed() {
		return ""
	}
	return string(ContinuationMarker)
}

// IsCommentMarker reports whether c starts a comment line under p.
// The fixed dialect also accepts the legacy markers 'C' and '*'.
func (p Profile) IsCommentMarker(c byte) bool {
	if c == p.CommentMarker {
		return true
	}
	if p.IsFixed() {
		return c == 'C' || c == '*'
	}
	return false
}

var (
	mu      sync.RWMutex
	current = FixedProfile()
)

// Current returns the process-wide default profile.
func Current() Profile {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process-wide default profile with the defaults of the named dialect.
// On error the previous selection is kept.
func Set(name string) error {
	p, err := Select(name)
	if err != nil {
		return err
	}
	mu.Lock()
	current = p
	mu.Unlock()
	return nil
}
