package cmd

import (
	"fmt"
	"os"

	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/internal/cache"
	"github.com/anisan-cli/streamkit/recent"
	"github.com/anisan-cli/streamkit/util"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type clearable struct {
	flag, short, what string
	clear             func() error
}

var clearables = []clearable{
	{"cache", "c", "cached search results", cache.Clear},
	{"recent", "r", "remembered embed URLs", recent.Clear},
	{"temp", "t", "temporary files", func() error { return util.Delete(where.Temp()) }},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear cached results, remembered URLs and temporary files",
	Run: func(cmd *cobra.Command, args []string) {
		picked := lo.Filter(clearables, func(c clearable, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(c.flag))
		})
		if len(picked) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, c := range picked {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), c.what))
			err := c.clear()
			erase()
			handleErr(err)
			done(cmd, "cleared %s", c.what)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	for _, c := range clearables {
		clearCmd.Flags().BoolP(c.flag, c.short, false, "clear "+c.what)
	}
	clearCmd.SetOut(os.Stdout)
}
