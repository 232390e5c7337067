package cmd

import (
	"os"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/unpack"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(unpackCmd)

	unpackCmd.Flags().BoolP("eval", "e", false, "Run the packer in a JavaScript VM instead of decoding it")
	unpackCmd.Flags().BoolP("lenient", "l", false, "Print scripts that are not packed unchanged")
	unpackCmd.SetOut(os.Stdout)
}

var unpackCmd = &cobra.Command{
	Use:   "unpack [file|-]",
	Short: "Decode p.a.c.k.e.r packed JavaScript",
	Long: `Decode every eval(function(p,a,c,k,e,d){...}) block of a script read from a file or stdin.
Blocks the decoder rejects are evaluated in a sandboxed JavaScript VM.`,
	Example: "  curl -s https://vidbom.com/embed-abc | streamkit unpack",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		content, err := filesystem.ReadFileOrStdin(path, os.Stdin)
		handleErr(err)
		script := string(content)

		if !unpack.Detect(script) {
			if lo.Must(cmd.Flags().GetBool("lenient")) {
				cmd.Print(script)
				return
			}
			handleErr(unpack.ErrNotPacked)
		}

		var unpacked string
		if lo.Must(cmd.Flags().GetBool("eval")) {
			unpacked, err = unpack.Eval(script)
		} else {
			unpacked, err = unpack.Decode(script)
		}
		handleErr(err)

		cmd.Println(unpacked)
	},
}
