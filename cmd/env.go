package cmd

import (
	"os"
	"sort"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/config"
	"github.com/anisan-cli/streamkit/style"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// envNames lists every environment variable the application reads, sorted.
func envNames() []string {
	names := lo.Map(config.EnvExposed, func(k string, _ int) string {
		return config.Default[k].Env()
	})
	names = append(names, where.EnvConfigPath)
	sort.Strings(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List supported environment variables and their values",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			onlySet   = lo.Must(cmd.Flags().GetBool("set-only"))
			onlyUnset = lo.Must(cmd.Flags().GetBool("unset-only"))
			name      = style.New().Bold(true).Foreground(color.Purple).Render
		)

		for _, env := range envNames() {
			value, present := os.LookupEnv(env)
			present = present && value != ""
			if (onlySet && !present) || (onlyUnset && present) {
				continue
			}

			shown := style.Fg(color.Red)("unset")
			if present {
				shown = style.Fg(color.Green)(value)
			}
			cmd.Printf("%s=%s\n", name(env), shown)
		}
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "only variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "only variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}
