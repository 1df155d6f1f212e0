package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lesscache/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [files...]",
		Short: "Compile LESS files and print the CSS",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repeat, _ := cmd.Flags().GetInt("repeat")
			compress, _ := cmd.Flags().GetBool("compress")
			strict, _ := cmd.Flags().GetBool("strict-imports")

			return c.app.Compile(cmd.Context(), args, app.CompileOptions{
				Output:        cmd.OutOrStdout(),
				Repeat:        repeat,
				Compress:      compress,
				StrictImports: strict,
			})
		},
	}

	cmd.Flags().IntP("repeat", "r", 0, "Request every file this many more times to show cache hits")
	cmd.Flags().BoolP("compress", "c", false, "Compress the output")
	cmd.Flags().Bool("strict-imports", false, "Fail on missing imports")

	return cmd
}
