package cmd

import (
	"os"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/style"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	flag, short string
	path        func() string
	// internal locations are reachable by flag but not listed
	internal bool
}

var locations = []location{
	{flag: "config", short: "c", path: where.Config},
	{flag: "sources", short: "s", path: where.Sources},
	{flag: "logs", short: "l", path: where.Logs},
	{flag: "recent", short: "r", path: where.Recent},
	{flag: "cache", path: where.Cache, internal: true},
	{flag: "temp", path: where.Temp, internal: true},
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where files are stored",
	Run: func(cmd *cobra.Command, args []string) {
		if picked, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		}); ok {
			cmd.Println(picked.path())
			return
		}

		title := style.New().Bold(true).Foreground(color.HiPurple).Render
		listed := lo.Reject(locations, func(l location, _ int) bool { return l.internal })
		for i, l := range listed {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(title(l.flag), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, "print the "+l.flag+" directory")
		if l.internal {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)
	whereCmd.SetOut(os.Stdout)
}
