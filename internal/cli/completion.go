package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ganttline/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ganttline.

Bash:
  $ source <(ganttline completion bash)

Zsh:
  $ ganttline completion zsh > "${fpath[1]}/_ganttline"

Fish:
  $ ganttline completion fish > ~/.config/fish/completions/ganttline.fish

PowerShell:
  PS> ganttline completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeFormats offers the output formats for -f.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return pipeline.FormatNames, cobra.ShellCompDirectiveNoFileComp
}

// completeScales offers the time scales for --scale.
func completeScales(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"hour", "day", "month"}, cobra.ShellCompDirectiveNoFileComp
}
