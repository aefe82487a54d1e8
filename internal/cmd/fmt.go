package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/document"
)

func fmtCmd() *cobra.Command {
	var (
		showDiff bool
		write    bool
	)

	cmd := cobra.Command{
		Use:   "fmt [FILE]",
		Short: "Print markup in canonical form",
		Long: `Parse markup and print it in canonical form: supported tags only,
marks in a fixed nesting order, adjacent runs merged. Reads stdin when FILE
is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, data, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			doc, err := document.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out := document.Serialize(doc)

			switch {
			case showDiff:
				return writeDiff(cmd.OutOrStdout(), string(data), out)
			case write && name != "-":
				if out == string(data) {
					return nil
				}
				return writeFile(name, []byte(out))
			default:
				_, err = io.WriteString(cmd.OutOrStdout(), out+"\n")
				return err
			}
		},
	}

	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "Print the changes formatting would make instead of the result.")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE.")

	return &cmd
}

// writeDiff prints a word diff of from and to: deletions as [-text-] and
// insertions as {+text+}. Nothing is printed when they are equal.
func writeDiff(w io.Writer, from, to string) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	changed := false
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			changed = true
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			changed = true
			sb.WriteString("{+" + d.Text + "+}")
		}
	}
	if !changed {
		return nil
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
