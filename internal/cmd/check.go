package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/document"
)

// errCheckFailed is returned when at least one file is malformed.
var errCheckFailed = errors.New("check failed")

func checkCmd() *cobra.Command {
	var noColor bool

	cmd := cobra.Command{
		Use:   "check FILE...",
		Short: "Report files whose markup cannot be parsed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed, color.Bold)
			if noColor || !isTerminal(out) {
				ok.DisableColor()
				bad.DisableColor()
			}

			failed := 0
			for _, name := range args {
				data, err := os.ReadFile(name)
				if err == nil {
					_, err = document.Parse(string(data))
				}
				if err != nil {
					failed++
					_, _ = bad.Fprint(out, "FAIL")
					_, _ = fmt.Fprintf(out, " %s: %v\n", name, err)
					continue
				}
				_, _ = ok.Fprint(out, "ok")
				_, _ = fmt.Fprintf(out, "   %s\n", name)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", errCheckFailed, failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output.")

	return &cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
