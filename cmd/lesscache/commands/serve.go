package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lesscache/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled style sheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			root, _ := cmd.Flags().GetString("root")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Addr:  addr,
				Root:  root,
				Watch: watch,
			})
		},
	}

	cmd.Flags().StringP("addr", "a", c.settings.Server.Addr, "Address to listen on")
	cmd.Flags().String("root", c.settings.Server.Root, "Directory holding the style sheets")
	cmd.Flags().BoolP("watch", "w", c.settings.Server.Watch, "Recompile affected style sheets when files change")

	return cmd
}
