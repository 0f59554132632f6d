package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/macrofor/pkg/fortran/fragment"
	"github.com/matzehuels/macrofor/pkg/pipeline"
	"github.com/matzehuels/macrofor/pkg/program"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	plain bool // print instead of starting the pager
	runFlags
}

// previewCommand creates the preview command for inspecting generated source.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [program]",
		Short: "Page through the source a program description generates",
		Long: `Preview renders a program description in memory and shows the result
in a pager with a column ruler. Columns beyond the line budget are
highlighted. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.capture(cmd)
			return c.runPreview(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the source instead of opening the pager")
	opts.register(cmd)

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, in io.Reader, w io.Writer, path string, opts previewOpts) error {
	f, err := program.Load(path)
	if err != nil {
		return err
	}
	runOpts, err := c.resolveOptions(f, opts.runFlags)
	if err != nil {
		return err
	}
	res, err := c.render(ctx, f, runOpts)
	if err != nil {
		return err
	}

	model := NewPreviewModel(filepath.Base(path), res.Text, res.Profile.MaxLineLength)
	if opts.plain {
		fmt.Fprint(w, res.Text)
		if n := model.Overflowing(); n > 0 {
			printWarning(w, "%d lines exceed %d columns", n, model.Budget)
		}
		return nil
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(w)).Run()
	return err
}

// render builds f with the effective profile and renders it in memory.
func (c *CLI) render(ctx context.Context, f *program.File, opts pipeline.Options) (*pipeline.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	frags, err := f.Build(fragment.New(opts.Profile, nil))
	if err != nil {
		return nil, err
	}
	return c.newRunner().Render(ctx, frags, opts)
}
