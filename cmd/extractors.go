package cmd

import (
	"encoding/json"
	"os"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/extractor"
	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractorsCmd)

	extractorsCmd.Flags().BoolP("raw", "r", false, "Print only the extractor names")
	extractorsCmd.Flags().BoolP("json", "j", false, "Print the extractors as JSON")
	extractorsCmd.MarkFlagsMutuallyExclusive("raw", "json")
	extractorsCmd.SetOut(os.Stdout)
}

var extractorsCmd = &cobra.Command{
	Use:   "extractors",
	Short: "List the built-in embed extractors and the URLs they handle",
	Run: func(cmd *cobra.Command, args []string) {
		extractors := extractor.Default().Extractors()

		switch {
		case lo.Must(cmd.Flags().GetBool("raw")):
			for _, e := range extractors {
				cmd.Println(e.Config.Name)
			}
		case lo.Must(cmd.Flags().GetBool("json")):
			type entry struct {
				Name      string `json:"name"`
				Pattern   string `json:"pattern"`
				Strategy  string `json:"strategy"`
				ExpandHLS bool   `json:"expand_hls"`
			}

			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(lo.Map(extractors, func(e *extractor.Extractor, _ int) entry {
				return entry{
					Name:      e.Config.Name,
					Pattern:   e.Config.Pattern.String(),
					Strategy:  e.Config.Sources.String(),
					ExpandHLS: e.Config.ExpandHLS,
				}
			})))
		default:
			name := style.New().Bold(true).Foreground(color.Purple).Render
			for i, e := range extractors {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Go), name(e.Config.Name), style.Faint(e.Config.Sources.String()))
				cmd.Println(style.Fg(color.Yellow)(e.Config.Pattern.String()))

				if i < len(extractors)-1 {
					cmd.Println()
				}
			}
		}
	},
}
