// Package commands implements the CLI commands for jlc.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/jlc/internal/app"
	"go.trai.ch/jlc/internal/build"
	"go.trai.ch/jlc/internal/core/domain"
)

// CLI represents the command line interface for jlc.
type CLI struct {
	app      Application
	defaults func() (domain.Defaults, error)
	rootCmd  *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, req app.BuildRequest) (domain.Report, error)
	Status(ctx context.Context, buildDir string) (*domain.Manifest, []domain.ArtifactStatus, error)
}

// Option configures a CLI.
type Option func(*CLI)

// WithDefaults replaces the host defaults. Used for testing.
func WithDefaults(d domain.Defaults) Option {
	return func(c *CLI) {
		c.defaults = func() (domain.Defaults, error) { return d, nil }
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "jlc",
		Short:         "Build Julia programs into shared libraries and executables",
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
		defaults: hostDefaults,
		rootCmd:  rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newStatusCmd())
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
