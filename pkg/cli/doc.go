/*
Package cli provides command-line helpers shared by the mgd commands.

Output Formatting:

Results are printed as styled text or JSON:

	styles := cli.NewStyles(os.Stdout)
	formatter := cli.NewFormatter(cli.FormatJSON, styles)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Text output is colored only when stdout is a terminal and NO_COLOR is unset.

Exit Codes:

ExitCode maps command errors to process exit codes: 0 when the invariant
holds, 1 when it is violated (ErrInvariantViolated) and 2 for malformed
input.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
