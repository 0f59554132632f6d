package style

import (
	"testing"

	"github.com/matzehuels/macrofor/pkg/errors"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dialect
		wantErr bool
	}{
		{"fixed", "fixed", Fixed, false},
		{"f77", "f77", Fixed, false},
		{"upper F77", "F77", Fixed, false},
		{"fortran77 padded", "  Fortran77 ", Fixed, false},
		{"legacy", "legacy", Fixed, false},
		{"free", "free", Free, false},
		{"f90", "F90", Free, false},
		{"modern", "MODERN", Free, false},
		{"empty", "", Fixed, true},
		{"f95", "f95", Fixed, true},
		{"garbage", "cobol", Fixed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Select(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Select(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidDialect) {
					t.Errorf("Select(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidDialect)
				}
				return
			}
			if p.Dialect != tt.want {
				t.Errorf("Select(%q).Dialect = %v, want %v", tt.input, p.Dialect, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	fixed := FixedProfile()
	if fixed.CommentMarker != 'c' || fixed.MaxLineLength != 72 || fixed.BlockIndent != "" {
		t.Errorf("FixedProfile() = %+v", fixed)
	}
	free := FreeProfile()
	if free.CommentMarker != '!' || free.MaxLineLength != 132 || free.BlockIndent != "  " {
		t.Errorf("FreeProfile() = %+v", free)
	}
	for _, p := range []Profile{fixed, free} {
		if err := p.Validate(); err != nil {
			t.Errorf("%v default fails validation: %v", p.Dialect, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"fixed shorter budget", FixedProfile().WithMaxLineLength(60), false},
		{"fixed reflow disabled", FixedProfile().WithMaxLineLength(0), false},
		{"fixed budget too long", FixedProfile().WithMaxLineLength(80), true},
		{"fixed budget below statement column", FixedProfile().WithMaxLineLength(5), true},
		{"fixed wrong marker", Profile{Dialect: Fixed, CommentMarker: '!', MaxLineLength: 72}, true},
		{"free 80", FreeProfile().WithMaxLineLength(80), false},
		{"free disabled", FreeProfile().WithMaxLineLength(-1), false},
		{"free too short", FreeProfile().WithMaxLineLength(72), true},
		{"free wrong marker", Profile{Dialect: Free, CommentMarker: 'c', MaxLineLength: 132}, true},
		{"unknown dialect", Profile{Dialect: Dialect(7)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContinuation(t *testing.T) {
	fixed := FixedProfile()
	if got := fixed.ContinuationPrefix("  "); got != "     &" {
		t.Errorf("fixed ContinuationPrefix = %q, want %q", got, "     &")
	}
	if got := fixed.ContinuationSuffix(); got != "" {
		t.Errorf("fixed ContinuationSuffix = %q, want empty", got)
	}

	free := FreeProfile()
	if got := free.ContinuationPrefix("    "); got != "    &" {
		t.Errorf("free ContinuationPrefix = %q, want %q", got, "    &")
	}
	if got := free.ContinuationSuffix(); got != "&" {
		t.Errorf("free ContinuationSuffix = %q, want %q", got, "&")
	}
}

func TestIsCommentMarker(t *testing.T) {
	fixed := FixedProfile()
	for _, c := range []byte{'c', 'C', '*'} {
		if !fixed.IsCommentMarker(c) {
			t.Errorf("fixed.IsCommentMarker(%q) = false", c)
		}
	}
	if fixed.IsCommentMarker('!') {
		t.Error("fixed.IsCommentMarker('!') = true")
	}

	free := FreeProfile()
	if !free.IsCommentMarker('!') {
		t.Error("free.IsCommentMarker('!') = false")
	}
	if free.IsCommentMarker('c') || free.IsCommentMarker('*') {
		t.Error("free dialect accepted a legacy marker")
	}
}

func TestSetCurrent(t *testing.T) {
	t.Cleanup(func() { _ = Set("fixed") })

	if err := Set("f90"); err != nil {
		t.Fatalf("Set(f90) error = %v", err)
	}
	if got := Current(); got != FreeProfile() {
		t.Errorf("Current() = %+v, want free defaults", got)
	}

	if err := Set("nope"); err == nil {
		t.Fatal("Set(nope) succeeded")
	}
	if got := Current(); got.Dialect != Free {
		t.Errorf("failed Set changed selection to %v", got.Dialect)
	}

	if err := Set("F77"); err != nil {
		t.Fatalf("Set(F77) error = %v", err)
	}
	if got := Current(); got != FixedProfile() {
		t.Errorf("Current() = %+v, want fixed defaults", got)
	}
}
