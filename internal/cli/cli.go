package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/reflectgo/internal/app"
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: 2, Message: err.Error()}
}

// usageArgs reports argument count problems as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usageError(validate(cmd, args))
	}
}

type options struct {
	manifests []string
	logLevel  string
	logFormat string
	format    string
}

// Execute runs the command line in args. Results are written to outW, logs
// and help for errors to errW. With no modules the core modules are used.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, modules ...registry.Module) error {
	slog.Debug("CLI parser started.")
	root := NewRootCommand(ctx, outW, errW, modules...)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the reflectgo command tree.
func NewRootCommand(ctx context.Context, outW, errW io.Writer, modules ...registry.Module) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "reflectgo",
		Short: "Inspect and call reflected Go types",
		Long: `reflectgo - A registry of reflected Go types with overload resolution.

Types come from the built-in modules and from HCL manifests that bind
declared functions to Go handlers. Their functions can be called from
HCL expressions, e.g.

  reflectgo eval 'geometry::Point::Dist(geometry::Point(0, 0), geometry::Point(3, 4))'`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&opts.manifests, "manifests", "m", nil, "Manifest files or directories containing .hcl files.")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log output format. Options: 'text' or 'json'. Defaults to text on a terminal.")
	flags.StringVarP(&opts.format, "format", "o", "text", "Result format. Options: 'text' or 'yaml'.")

	newApp := func(cmd *cobra.Command) (*app.App, error) {
		config, err := app.NewConfig(app.Config{
			ManifestPaths: opts.manifests,
			LogFormat:     opts.logFormat,
			LogLevel:      opts.logLevel,
			OutputFormat:  opts.format,
		})
		if err != nil {
			return nil, usageError(err)
		}
		slog.Debug("CLI parameter validation complete.", "command", cmd.Name())
		return app.NewApp(ctx, outW, errW, config, modules...)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "dump [type-id...]",
			Short: "Describe the given types, or every type",
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd)
				if err != nil {
					return err
				}
				return a.Dump(args...)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Load every type and validate the hierarchy",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := newApp(cmd)
				if err != nil {
					return err
				}
				return a.Check()
			},
		},
		&cobra.Command{
			Use:   "eval <expression>",
			Short: "Evaluate an HCL expression calling reflected functions",
			Args:  usageArgs(cobra.ExactArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(cmd)
				if err != nil {
					return err
				}
				return a.Eval(args[0])
			},
		},
	)
	return root
}
