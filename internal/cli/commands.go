package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/toyz/dualgen/internal/config"
	"github.com/toyz/dualgen/internal/errors"
	"github.com/toyz/dualgen/internal/utils"
)

// app carries the state of one command invocation
type app struct {
	opts    Options
	noColor bool
	stdout  io.Writer
	stderr  io.Writer

	reporter *DiagnosticReporter
}

// Execute runs the command line and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return ExecuteArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command line with explicit arguments and outputs.
// Errors already reported while running only set the exit code.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrGenerationFailed) && !errors.Is(err, ErrOutOfDate) {
		a.errorReporter().ReportError(err)
	}
	return 1
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dualgen [flags] [paths...]",
		Short: "Generate the blocking or reactive twin of HTTP client interfaces",
		Long: `dualgen reads Java HTTP client interfaces marked with the client trigger
annotation and writes the complementary interface: a blocking client gets a
reactive twin returning Mono and Flux, a reactive client gets a blocking twin.

Paths may be files, directories, or Go-style recursive patterns:

  ./...                 the current directory and everything below it
  ./src/main/java/...   one source tree
  ./src/main/java/api   a single directory

Without paths the current directory is scanned recursively.`,
		Version:       config.DefaultVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.Paths = args
			return a.runGenerate(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.ConfigFile, "config", "c", "", "config file (default: nearest dualgen.yaml)")
	flags.StringVarP(&a.opts.OutDir, "out", "o", "", "output source root (default: beside each source)")
	flags.StringVar(&a.opts.WorkDir, "dir", "", "directory to start config discovery from")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.opts.Quiet, "quiet", "q", false, "only show errors")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.Flags().BoolVarP(&a.opts.Watch, "watch", "w", false, "keep regenerating as sources change")

	root.AddCommand(a.checkCommand(), a.cleanCommand())
	return root
}

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify generated interfaces are up to date without writing",
		Long: `check generates into memory and compares the result with the files on disk,
ignoring the generation date and run id. It exits with status 1 when a
generated file is missing or stale, which makes it suitable for CI.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.Paths = args
			return a.runCheck(cmd.Context())
		},
	}
}

func (a *app) cleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [paths...]",
		Short: "Remove interfaces previously generated by dualgen",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.opts.Paths = args
			return a.runClean()
		},
	}
}

// setup loads the configuration and builds the output helpers
func (a *app) setup() (*config.Config, *utils.DiagnosticSystem, error) {
	workDir := a.opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to determine working directory")
		}
		workDir = wd
	}

	cfg, err := config.Load(a.opts.ConfigFile, workDir)
	if err != nil {
		return nil, nil, err
	}
	if a.opts.OutDir != "" {
		cfg.Output.Dir = a.opts.OutDir
	}

	diagnostics := utils.NewDiagnosticSystem(utils.LevelFor(a.opts.Quiet, a.opts.Verbose))
	diagnostics.SetOutput(a.stdout, a.stderr)
	if a.noColor {
		diagnostics.SetColors(false)
	}

	if cfg.Source != "" {
		diagnostics.Verbose("using config %s", cfg.Source)
	}
	return cfg, diagnostics, nil
}

func (a *app) errorReporter() *DiagnosticReporter {
	if a.reporter == nil {
		a.reporter = NewDiagnosticReporter(a.opts.Verbose)
		a.reporter.SetOutput(a.stderr)
		if a.noColor {
			a.reporter.SetColors(false)
		}
	}
	return a.reporter
}

func (a *app) runGenerate(ctx context.Context) error {
	cfg, diagnostics, err := a.setup()
	if err != nil {
		return err
	}
	diagnostics.Header(cfg.Generator.Identity())
	g := NewGenerator(cfg, diagnostics, a.errorReporter())

	if a.opts.Watch {
		watcher, err := NewWatcher(g, a.opts.patterns())
		if err != nil {
			return err
		}
		return watcher.Run(ctx)
	}

	summary, err := g.Generate(ctx, a.opts.patterns())
	if err != nil && !errors.Is(err, ErrGenerationFailed) {
		return err
	}
	g.PrintSummary(summary)
	if err != nil {
		return err
	}
	diagnostics.Success("generated %d interfaces", len(summary.GeneratedFiles))
	return nil
}

func (a *app) runCheck(ctx context.Context) error {
	cfg, diagnostics, err := a.setup()
	if err != nil {
		return err
	}
	diagnostics.Header(cfg.Generator.Identity() + " check")
	g := NewGenerator(cfg, diagnostics, a.errorReporter())

	result, _, err := g.Check(ctx, a.opts.patterns())
	if err != nil && !errors.Is(err, ErrGenerationFailed) && !errors.Is(err, ErrOutOfDate) {
		return err
	}

	for _, path := range result.Missing {
		diagnostics.Error("missing %s", path)
	}
	for _, path := range result.Stale {
		diagnostics.Error("stale %s", path)
	}
	if err != nil {
		if errors.Is(err, ErrOutOfDate) {
			diagnostics.Error("run dualgen to regenerate %d files", len(result.Missing)+len(result.Stale))
		}
		return err
	}
	diagnostics.Success("%d generated interfaces up to date", len(result.UpToDate))
	return nil
}

func (a *app) runClean() error {
	cfg, diagnostics, err := a.setup()
	if err != nil {
		return err
	}
	diagnostics.Header(cfg.Generator.Identity() + " clean")

	removed, err := NewCleaner(cfg, diagnostics).CleanGeneratedFiles(a.opts.patterns())
	if err != nil {
		return err
	}
	diagnostics.Success("removed %d generated files", len(removed))
	return nil
}
