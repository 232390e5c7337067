package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/style"
	"github.com/anisan-cli/streamkit/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify()

		cmd.Println(style.Fg(color.Purple)("▇▇▇ " + constant.App))
		cmd.Println()

		for _, row := range [][2]string{
			{"Version", constant.Version},
			{"Revision", constant.Revision},
			{"Built at", strings.TrimSpace(constant.BuiltAt)},
			{"Built by", constant.BuiltBy},
			{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		} {
			cmd.Printf("  %s %s\n", style.Faint(fmt.Sprintf("%-10s", row[0])), style.Bold(lo.Ternary(row[1] == "", "unknown", row[1])))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "print only the version number")
	versionCmd.SetOut(os.Stdout)
}
