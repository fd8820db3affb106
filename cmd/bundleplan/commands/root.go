// Package commands implements the CLI commands for bundleplan.
package commands

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/bundleplan/internal/app"
	"go.trai.ch/bundleplan/internal/build"
	"go.trai.ch/bundleplan/internal/core/domain"
)

// CLI represents the command line interface for bundleplan.
type CLI struct {
	app       Application
	logFormat app.LogFormatter
	rootCmd   *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, opts app.Options) (*domain.Resolution, error)
	Build(ctx context.Context, opts app.Options) (*domain.BundleResult, error)
	Watch(ctx context.Context, opts app.Options) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogFormatter lets the --log-format flag switch the logger's format.
func WithLogFormatter(lf app.LogFormatter) Option {
	return func(c *CLI) {
		c.logFormat = lf
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "bundleplan",
		Short:         "Resolve bundling plans and build with esbuild",
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

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to "+domain.ConfigFileName+" (default: search upward from the working directory)")
	flags.Bool("serve", false, "Resolve for the development server")
	flags.Bool("lib", false, "Resolve for a library build")
	flags.String("base", "", "Deploy under this sub-path, e.g. /editor/ (overrides "+domain.EnvBase+")")
	flags.Bool("globals-available", false, "Assert that runtime globals are loaded on the page (overrides "+
		domain.EnvGlobalsAvailable+")")
	flags.String("format", "", "Output module format: esm, cjs or umd (overrides the config)")
	flags.String("log-format", cmp.Or(os.Getenv(domain.EnvLogFormat), "auto"),
		"Log format: auto, pretty or json (overrides "+domain.EnvLogFormat+")")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if c.logFormat == nil {
			return nil
		}
		format, _ := cmd.Flags().GetString("log-format")
		return c.logFormat.SetFormat(format)
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
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

// options reads the shared resolution flags.
func options(cmd *cobra.Command, modules []string) app.Options {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	serve, _ := flags.GetBool("serve")
	lib, _ := flags.GetBool("lib")
	base, _ := flags.GetString("base")
	format, _ := flags.GetString("format")

	overrides := domain.Overrides{
		Base:    base,
		Serve:   serve,
		Library: lib,
		Format:  format,
	}

	// Unset defers to the environment.
	if flags.Changed("globals-available") {
		available, _ := flags.GetBool("globals-available")
		overrides.GlobalsAvailable = &available
	}

	return app.Options{
		ConfigPath: configPath,
		Overrides:  overrides,
		Modules:    modules,
	}
}
