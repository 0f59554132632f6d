package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/pipeline"
	"github.com/matzehuels/macrofor/pkg/program"
)

// runFlags holds the layout flags shared by generate and preview.
type runFlags struct {
	style           string // dialect name or alias
	maxLineLength   int    // column budget override
	maxSet          bool   // whether --max-line-length was given
	noReflow        bool   // disable line folding
	lineEnding      string // lf, crlf or cr
	encoding        string // output character set
	allowUnresolved bool   // pass malformed placeholders through
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.style, "style", "", "dialect: fixed (f77) or free (f90)")
	cmd.Flags().IntVar(&f.maxLineLength, "max-line-length", 0, "column budget (0 disables reflow)")
	cmd.Flags().BoolVar(&f.noReflow, "no-reflow", false, "do not fold long lines")
	cmd.Flags().StringVar(&f.lineEnding, "line-ending", "", "line ending: lf (default), crlf, cr")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "output encoding, e.g. utf-8 (default), latin1, cp1252")
	cmd.Flags().BoolVar(&f.allowUnresolved, "allow-unresolved", false, "keep malformed label placeholders instead of failing")
}

// capture records which flags were set explicitly.
func (f *runFlags) capture(cmd *cobra.Command) {
	f.maxSet = cmd.Flags().Changed("max-line-length")
}

func (f runFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Style:           f.style,
		Encoding:        f.encoding,
		AllowUnresolved: f.allowUnresolved,
	}
	switch {
	case f.noReflow:
		off := 0
		opts.MaxLineLength = &off
	case f.maxSet:
		n := f.maxLineLength
		opts.MaxLineLength = &n
	}
	if f.lineEnding != "" {
		le, err := pipeline.ParseLineEnding(f.lineEnding)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.LineEnding = le
	}
	return opts, nil
}

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output string // destination path, overrides the description's output
	runFlags
}

// generateCommand creates the generate command for writing Fortran source files.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [program]",
		Short: "Generate a Fortran source file from a program description",
		Long: `Generate compiles a TOML or YAML program description into Fortran source.

Labels written as symbolic names are numbered 100, 200, ... in order of
appearance. Lines longer than the dialect's budget are continued on the
following lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.capture(cmd)
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: the description's output)")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, w io.Writer, path string, opts generateOpts) error {
	prog := newProgress(c.Logger)
	f, err := program.Load(path)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", filepath.Base(path)))

	runOpts, err := c.resolveOptions(f, opts.runFlags)
	if err != nil {
		return err
	}

	out, err := outputPath(path, f, opts.output)
	if err != nil {
		return err
	}

	res, err := c.newRunner().Execute(ctx, out, f.Build, runOpts)
	if err != nil {
		return err
	}

	printSuccess(w, "Generated %s", res.Path)
	printStats(w, res)
	return nil
}

// outputPath picks the destination. A relative output from the description
// is taken relative to the description's directory.
func outputPath(programPath string, f *program.File, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if f.Output == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no output path: pass -o or set output in %s", programPath)
	}
	if filepath.IsAbs(f.Output) {
		return f.Output, nil
	}
	return filepath.Join(filepath.Dir(programPath), f.Output), nil
}
