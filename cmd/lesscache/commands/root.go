// Package commands implements the CLI commands for lesscache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lesscache/internal/adapters/config"
	"go.trai.ch/lesscache/internal/app"
	"go.trai.ch/lesscache/internal/build"
)

// CLI represents the command line interface for lesscache.
type CLI struct {
	app      Application
	settings *config.Settings
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Compile(ctx context.Context, paths []string, opts app.CompileOptions) error
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// New creates a new CLI instance. Settings provide the flag defaults; nil means
// the built-in defaults.
func New(a Application, settings *config.Settings) *CLI {
	if settings == nil {
		settings = &config.Settings{
			Server: config.ServerSettings{Addr: config.DefaultAddr, Root: "."},
		}
	}

	rootCmd := &cobra.Command{
		Use:           "lesscache",
		Short:         "Compile and serve LESS style sheets through a validating cache",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:      a,
		settings: settings,
		rootCmd:  rootCmd,
	}

	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
