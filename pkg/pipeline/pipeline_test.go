package pipeline

import (
	"testing"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/fortran/style"
)

func intPtr(n int) *int { return &n }

func TestParseLineEnding(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"lf", LF, false},
		{"CRLF", CRLF, false},
		{" cr ", CR, false},
		{"windows", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLineEnding(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLineEnding(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLineEnding(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Profile != style.Current() {
		t.Errorf("Profile = %+v, want process default", o.Profile)
	}
	if o.Encoding != DefaultEncoding || o.LineEnding != LF {
		t.Errorf("Encoding = %q, LineEnding = %q", o.Encoding, o.LineEnding)
	}
	if o.Policy == nil || o.Logger == nil {
		t.Error("Policy and Logger should be set")
	}
	if !o.Reflows() {
		t.Error("default profile should reflow")
	}
}

func TestOptionsProcessDefault(t *testing.T) {
	if err := style.Set("free"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = style.Set("fixed") })

	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Profile.Dialect != style.Free {
		t.Errorf("Dialect = %v, want free", o.Profile.Dialect)
	}
}

func TestOptionsStyleOverridesProfile(t *testing.T) {
	o := Options{Style: "F90", Profile: style.FixedProfile()}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Profile != style.FreeProfile() {
		t.Errorf("Profile = %+v, want free defaults", o.Profile)
	}
}

func TestOptionsMaxLineLength(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    int
		reflows bool
		code    errors.Code
	}{
		{"free wider", Options{Style: "free", MaxLineLength: intPtr(100)}, 100, true, ""},
		{"fixed narrower", Options{Style: "fixed", MaxLineLength: intPtr(40)}, 40, true, ""},
		{"zero disables", Options{Style: "fixed", MaxLineLength: intPtr(0)}, 0, false, ""},
		{"negative disables", Options{Style: "free", MaxLineLength: intPtr(-1)}, -1, false, ""},
		{"fixed over 72", Options{Style: "fixed", MaxLineLength: intPtr(100)}, 0, false, errors.ErrCodeInvalidDialect},
		{"free under 80", Options{Style: "free", MaxLineLength: intPtr(60)}, 0, false, errors.ErrCodeInvalidDialect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.opts.Profile.MaxLineLength != tt.want || tt.opts.Reflows() != tt.reflows {
				t.Errorf("MaxLineLength = %d, Reflows = %v", tt.opts.Profile.MaxLineLength, tt.opts.Reflows())
			}
		})
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown style", Options{Style: "cobol"}, errors.ErrCodeInvalidDialect},
		{"bad line ending", Options{LineEnding: "\t"}, errors.ErrCodeInvalidInput},
		{"bad encoding", Options{Encoding: "klingon"}, errors.ErrCodeInvalidEncoding},
		{"bad profile", Options{Profile: style.Profile{Dialect: style.Free, CommentMarker: 'c', MaxLineLength: 132}}, errors.ErrCodeInvalidDialect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		text, le, want string
	}{
		{"a", LF, "a\n"},
		{"a\n\n\n", LF, "a\n"},
		{"a\nb", CRLF, "a\r\nb\r\n"},
		{"a\nb\n", CR, "a\rb\r"},
		{"", LF, "\n"},
	}
	for _, tt := range tests {
		if got := terminate(tt.text, tt.le); got != tt.want {
			t.Errorf("terminate(%q, %q) = %q, want %q", tt.text, tt.le, got, tt.want)
		}
	}
}

func TestConcat(t *testing.T) {
	var s Stats
	got := concat([]string{"", "a\r\nb", "", "c\rd"}, &s)
	if got != "a\nb\nc\nd" {
		t.Errorf("concat = %q", got)
	}
	if s.Fragments != 2 {
		t.Errorf("Fragments = %d, want 2", s.Fragments)
	}
}
