// Package commands implements the CLI commands for relink.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/relink/internal/app"
	"go.trai.ch/relink/internal/build"
	"go.trai.ch/relink/internal/core/domain"
)

// CLI represents the command line interface for relink.
type CLI struct {
	app       Application
	rootCmd   *cobra.Command
	logFormat func(json bool)
}

// Application represents the application logic interface.
type Application interface {
	Link(ctx context.Context, configPath string) (*app.LinkResult, error)
	List(ctx context.Context, root, module string) ([]domain.ResourceEntry, error)
	Verify(ctx context.Context, root string, modules ...string) (*app.VerifyReport, error)
}

// Option configures a CLI.
type Option func(*CLI)

// WithLogFormat registers the callback applying the --json-logs flag.
func WithLogFormat(fn func(json bool)) Option {
	return func(c *CLI) {
		c.logFormat = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "relink",
		Short:         "Link and reconstruct modular runtime images",
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
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if c.logFormat != nil {
			c.logFormat(jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
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

// SetOutput sets the output and error streams for the root command.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
