package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/program"
)

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestGenerateDescriptionOutput(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	prog := writeFile(t, dir, "hello.toml", helloProgram)

	out, err := execute(t, c, "generate", prog)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	dest := filepath.Join(dir, "out", "hello.f")
	if diff := cmp.Diff(helloFixed, readOutput(t, dest)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(out, "Generated "+dest) {
		t.Errorf("missing success line:\n%s", out)
	}
	if !strings.Contains(out, "4 lines") || !strings.Contains(out, "1 labels") {
		t.Errorf("missing stats:\n%s", out)
	}
}

func TestGenerateFlags(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	prog := writeFile(t, dir, "hello.toml", helloProgram)
	dest := filepath.Join(dir, "free", "hello.f90")

	if _, err := execute(t, c, "generate", prog, "-o", dest, "--style", "free", "--line-ending", "crlf"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := "program hello\r\n" +
		"  write (6, 100)\r\n" +
		"  100 format ('hello')\r\n" +
		"end\r\n"
	if diff := cmp.Diff(want, readOutput(t, dest)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Error("-o should replace the description's output")
	}
}

func TestGenerateMaxLineLength(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	body := `style = "free"
output = "sum.f90"

[[statements]]
op = "assign"
var = "total"
expr = "alpha + beta + gamma + delta + epsilon"
`
	prog := writeFile(t, dir, "sum.toml", body)

	if _, err := execute(t, c, "generate", prog, "--max-line-length", "80"); err != nil {
		t.Fatal(err)
	}
	if got := readOutput(t, filepath.Join(dir, "sum.f90")); strings.Count(got, "\n") != 1 {
		t.Errorf("short line was split:\n%s", got)
	}

	// A budget below the free-form minimum is rejected.
	if _, err := execute(t, c, "generate", prog, "--max-line-length", "20"); !errors.Is(err, errors.ErrCodeInvalidDialect) {
		t.Errorf("budget 20: error = %v, want INVALID_DIALECT", err)
	}

	if _, err := execute(t, c, "generate", prog, "--no-reflow"); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	noOutput := writeFile(t, dir, "bare.toml", "[[statements]]\nop = \"stop\"\n")
	badOp := writeFile(t, dir, "bad.yaml", "output: x.f\nstatements:\n  - op: loop\n")
	hello := writeFile(t, dir, "hello.toml", helloProgram)

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"missing file", []string{"generate", filepath.Join(dir, "nope.toml")}, errors.ErrCodeFileNotFound},
		{"no output", []string{"generate", noOutput}, errors.ErrCodeInvalidInput},
		{"unknown op", []string{"generate", badOp}, errors.ErrCodeInvalidProgram},
		{"bad style", []string{"generate", hello, "--style", "f66"}, errors.ErrCodeInvalidDialect},
		{"bad encoding", []string{"generate", hello, "--encoding", "klingon"}, errors.ErrCodeInvalidEncoding},
		{"bad line ending", []string{"generate", hello, "--line-ending", "nl"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			_, err := execute(t, c, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestGenerateVerboseLogsRun(t *testing.T) {
	c, logs := newTestCLI(t)
	c.SetLogLevel(LogDebug)
	dir := t.TempDir()
	prog := writeFile(t, dir, "hello.toml", helloProgram)

	if _, err := execute(t, c, "generate", prog); err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"Loaded hello.toml", "run started", "generated source", "run complete"} {
		if !strings.Contains(logs.String(), msg) {
			t.Errorf("log missing %q:\n%s", msg, logs.String())
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		flag   string
		want   string
	}{
		{"flag wins", "a.f", "/tmp/b.f", "/tmp/b.f"},
		{"relative to description", "build/a.f", "", filepath.Join("progs", "build", "a.f")},
		{"absolute", "/srv/a.f", "", "/srv/a.f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPath(filepath.Join("progs", "a.toml"), &program.File{Output: tt.output}, tt.flag)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
