package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/macrofor/pkg/fortran/style"
)

// stylesCommand creates the styles command listing the supported dialects.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the Fortran dialects and their layout defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := style.Current().Dialect
			if cfg, err := c.loadConfig(); err == nil && cfg.Style != "" {
				if p, err := style.Select(cfg.Style); err == nil {
					current = p.Dialect
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), stylesTable(current))
			return nil
		},
	}
}

// stylesTable renders the dialect defaults, marking current.
func stylesTable(current style.Dialect) string {
	var rows [][]string
	for _, d := range []style.Dialect{style.Fixed, style.Free} {
		p := style.ForDialect(d)
		mark := ""
		if d == current {
			mark = "●"
		}
		rows = append(rows, []string{
			mark,
			d.String(),
			strings.Join(style.Names(d)[1:], ", "),
			string(p.CommentMarker),
			strconv.Itoa(p.MaxLineLength),
			continuation(p),
			strconv.Quote(p.BlockIndent),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dialect", "Aliases", "Comment", "Columns", "Continuation", "Indent").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row >= 0 && row < len(rows) && rows[row][0] != "" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

func continuation(p style.Profile) string {
	if p.IsFixed() {
		return fmt.Sprintf("%q, marker in column %d", p.ContinuationPrefix(""), style.StatementColumn-1)
	}
	return fmt.Sprintf("%q at end, %q on next", p.ContinuationSuffix(), p.ContinuationPrefix(""))
}
