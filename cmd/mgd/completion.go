package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCompletionCmd(a *app, root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for mgd.

To load completions:

Bash:
  $ source <(mgd completion bash)
  # To load permanently:
  $ mgd completion bash > /etc/bash_completion.d/mgd

Zsh:
  $ mgd completion zsh > "${fpath[1]}/_mgd"
  $ compinit

Fish:
  $ mgd completion fish | source
  # To load permanently:
  $ mgd completion fish > ~/.config/fish/completions/mgd.fish

PowerShell:
  PS> mgd completion powershell | Out-String | Invoke-Expression
  # To load permanently, add to your PowerShell profile
`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(a.stdout)
			case "zsh":
				return root.GenZshCompletion(a.stdout)
			case "fish":
				return root.GenFishCompletion(a.stdout, true)
			case "powershell":
				return root.GenPowerShellCompletion(a.stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
