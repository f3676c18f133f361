package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/chart"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for suechart and write it to stdout.

  bash:        source <(suechart completion bash)
  zsh:         suechart completion zsh > "${fpath[1]}/_suechart"
  fish:        suechart completion fish > ~/.config/fish/completions/suechart.fish
  powershell:  suechart completion powershell | Out-String | Invoke-Expression

Completion for --type lists the chart catalog.`,
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
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeChartTypes offers the chart catalog for --type flags.
func completeChartTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	types := chart.Catalog()
	out := make([]string, 0, len(types))
	for _, t := range types {
		if strings.HasPrefix(t.String(), toComplete) {
			out = append(out, t.String())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
