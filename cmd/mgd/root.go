package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/config"
	"dialectic-hq/mgd/pkg/dialectic/engine"
	"dialectic-hq/mgd/pkg/dialectic/runner"
	"dialectic-hq/mgd/pkg/telemetry"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	cfgFile string
	verbose bool
	format  string
	metrics bool
	trace   bool
}

// app carries the output streams and global flags of one invocation.
type app struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mgd",
		Short: "mgd - generative dialectic tension engine",
		Long: `mgd applies dialectic operators to a state made of tension scores T,
a synthesis S and an antithesis accumulator A, and checks the invariant
S ≥ ΣT + A after every operation.

Operators:
  - hybridize: combine two tensions into a damped new one
  - resolve:   fold the two smallest tensions into A
  - recurse:   hybridize the closest pair repeatedly

Exit codes: 0 invariant holds, 1 invariant violated, 2 malformed input.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.flags.cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	flags.BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.StringVar(&a.flags.format, "format", string(cli.FormatText), "output format: text, json")
	flags.BoolVar(&a.flags.metrics, "metrics", false, "write Prometheus metrics to stderr on exit")
	flags.BoolVar(&a.flags.trace, "trace", false, "export OpenTelemetry spans to stderr")

	root.AddCommand(
		newHybridizeCmd(a),
		newResolveCmd(a),
		newRecurseCmd(a),
		newCheckCmd(a),
		newGenerateCmd(a),
		newLatticeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
		newCompletionCmd(a, root),
	)

	return root
}

// session is the configured engine stack for one command.
type session struct {
	cfg       *config.Config
	tel       *telemetry.Telemetry
	runner    *runner.Runner
	formatter cli.Formatter
}

// formatter builds the output formatter selected by --format.
func (a *app) formatter() (cli.Formatter, error) {
	format, err := cli.ParseFormat(a.flags.format)
	if err != nil {
		return nil, cli.UsageError(err)
	}
	return cli.NewFormatter(format, cli.NewStyles(a.stdout)), nil
}

// loadConfig reads the configuration file and environment overrides, then
// applies the global flags on top.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(a.flags.cfgFile)
	if err != nil {
		return nil, cli.UsageError(err)
	}

	if a.flags.verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if a.flags.metrics {
		cfg.Telemetry.Metrics.Enabled = true
	}
	if a.flags.trace {
		cfg.Telemetry.Tracing.Enabled = true
	}
	return cfg, nil
}

// session loads configuration and wires telemetry, the engine and a runner.
// Callers must close the session.
func (a *app) session() (*session, error) {
	formatter, err := a.formatter()
	if err != nil {
		return nil, err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.New(&cfg.Telemetry, a.stderr)
	if err != nil {
		return nil, cli.UsageError(err)
	}

	eng, err := engine.New(cfg.Engine.ToEngine())
	if err != nil {
		_ = tel.Shutdown(context.Background())
		return nil, cli.UsageError(err)
	}

	config.SetConfig(cfg)

	return &session{
		cfg:       cfg,
		tel:       tel,
		runner:    runner.New(eng, tel),
		formatter: formatter,
	}, nil
}

// close dumps metrics when requested and flushes spans.
func (s *session) close(ctx context.Context, dumpMetrics bool) error {
	if dumpMetrics {
		if err := s.tel.DumpMetrics(); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return s.tel.Shutdown(context.WithoutCancel(ctx))
}

// withSession runs fn with a fresh session and closes it afterwards. The
// error of fn wins over a close failure.
func (a *app) withSession(ctx context.Context, fn func(*session) error) error {
	sess, err := a.session()
	if err != nil {
		return err
	}

	runErr := fn(sess)
	closeErr := sess.close(ctx, a.flags.metrics)
	if runErr != nil {
		return runErr
	}
	return closeErr
}
