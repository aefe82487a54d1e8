package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the inkwell version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := inkwell.Version()
			if rev := inkwell.Revision(); rev != "" {
				v += " (" + rev + ")"
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "inkwell version %s\n", v)
			return err
		},
	}
}
