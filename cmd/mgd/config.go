package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dialectic-hq/mgd/pkg/cli"
	"dialectic-hq/mgd/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(newConfigValidateCmd(a))
	return cmd
}

func newConfigValidateCmd(a *app) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file and environment overrides",
		Long: `Validate loads the file given by --config, applies MGD_* environment
overrides and reports every invalid field. With --show the effective
configuration is printed as YAML.

Examples:
  mgd config validate --config mgd.yaml
  MGD_ENGINE_MAX_DEPTH=500 mgd config validate --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return a.reportInvalidFields(err)
			}
			if !show {
				fmt.Fprintln(a.stdout, "configuration is valid")
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to render configuration: %w", err)
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the effective configuration")
	return cmd
}

// reportInvalidFields prints one line per invalid field when err carries a
// validation failure.
func (a *app) reportInvalidFields(err error) error {
	var verr config.ValidationError
	if !errors.As(err, &verr) || len(verr.Errors) == 0 {
		return err
	}

	for _, fe := range verr.Errors {
		fmt.Fprintln(a.stderr, cli.NewConfigError(fe.Field, fe.Message).Error())
	}
	return cli.UsageError(fmt.Errorf("configuration has %d invalid field(s)", len(verr.Errors)))
}
