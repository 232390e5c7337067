package version

import (
	"fmt"
	"os"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/style"
	"github.com/anisan-cli/streamkit/util"
	"github.com/spf13/viper"
)

// Notify prints a notice to stderr when a newer release exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(os.Stderr, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/anisan-cli/streamkit/releases/tag/v"+version),
	)
}
