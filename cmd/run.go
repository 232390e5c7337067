package cmd

import (
	"encoding/json"

	"github.com/anisan-cli/streamkit/provider/custom"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("query", "q", "", "Search the script with this query and print the results")
}

// runCmd loads a local Lua source file, for script development.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a local Lua source file",
	Long: `Load a Lua source script, checking that it defines every required function.
With --query the script is searched and the results are printed as JSON.`,
	Args:    cobra.ExactArgs(1),
	Example: "  streamkit run ./asktv.lua --query monster",
	Run: func(cmd *cobra.Command, args []string) {
		src, err := custom.LoadSource(args[0])
		handleErr(err)

		query := lo.Must(cmd.Flags().GetString("query"))
		if query == "" {
			return
		}

		animes, err := src.Search(query)
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(animes))
	},
}
