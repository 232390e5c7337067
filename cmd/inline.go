package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/inline"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/provider"
	"github.com/anisan-cli/streamkit/source"
	"github.com/anisan-cli/streamkit/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Search sources and resolve episodes without prompts",
	Long: `Search the default sources, pick anime and episodes, and optionally resolve their videos.

Anime (-a):
  first, last     by position in the results
  exact           name equal to the query
  <n>             by index, starting from 0

Episodes (-e):
  first, last, all
  <n>             by index, starting from 0
  <from>-<to>     inclusive range of indices
  @<text>@        names containing text

With --json the anime selector may be omitted to keep every result.`,
	Example: `  streamkit inline -S asktv -q monster -a first -e last -V`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(cmd.MarkFlagRequired("anime"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		options, err := inlineOptions(cmd)
		handleErr(err)

		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			defer util.Ignore(f.Close)
			options.Out = f
		}

		handleErr(inline.Run(options))
	},
}

func inlineOptions(cmd *cobra.Command) (*inline.Options, error) {
	sources, err := defaultSources()
	if err != nil {
		return nil, err
	}

	options := &inline.Options{
		Out:            io.Writer(os.Stdout),
		Sources:        sources,
		Query:          lo.Must(cmd.Flags().GetString("query")),
		Json:           lo.Must(cmd.Flags().GetBool("json")),
		Videos:         lo.Must(cmd.Flags().GetBool("include-videos")),
		AnimePicker:    mo.None[inline.AnimePicker](),
		EpisodesFilter: mo.None[inline.EpisodesFilter](),
	}

	if flag := lo.Must(cmd.Flags().GetString("anime")); flag != "" {
		picker, err := inline.PickerFromFlag(flag, options.Query)
		if err != nil {
			return nil, err
		}
		options.AnimePicker = mo.Some(picker)
	}

	if flag := lo.Must(cmd.Flags().GetString("episodes")); flag != "" {
		filter, err := inline.ParseEpisodesFilter(flag)
		if err != nil {
			return nil, err
		}
		options.EpisodesFilter = mo.Some(filter)
	}

	if viper.GetBool(key.InlineSortVideos) {
		options.PreferredQuality = viper.GetString(key.ExtractPreferredQuality)
	}

	return options, nil
}

// defaultSources loads every script named by sources.default.
func defaultSources() ([]source.Source, error) {
	names := viper.GetStringSlice(key.DefaultSources)
	if len(names) == 0 {
		return nil, errors.New("no sources set, use --source or set " + key.DefaultSources)
	}

	sources := make([]source.Source, 0, len(names))
	for _, name := range names {
		p, ok := provider.Get(name)
		if !ok {
			return nil, fmt.Errorf("source not found: %s", name)
		}

		src, err := p.CreateSource()
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		sources = append(sources, src)
	}

	return sources, nil
}

var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of inline output",
	Run: func(cmd *cobra.Command, args []string) {
		schema := inline.Schema(lo.Must(cmd.Flags().GetBool("extract")))
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}

func init() {
	rootCmd.AddCommand(inlineCmd)
	inlineCmd.AddCommand(inlineSchemaCmd)

	flags := inlineCmd.Flags()
	flags.StringP("query", "q", "", "search query")
	flags.StringP("anime", "a", "", "anime selector")
	flags.StringP("episodes", "e", "", "episodes selector")
	flags.BoolP("json", "j", false, "print a json document")
	flags.BoolP("include-videos", "V", false, "resolve videos of the selected episodes")
	flags.BoolP("sort-videos", "s", true, "move videos matching the preferred quality to the front")
	flags.StringP("output", "o", "", "write output to this file")
	lo.Must0(viper.BindPFlag(key.InlineSortVideos, flags.Lookup("sort-videos")))
	lo.Must0(inlineCmd.MarkFlagRequired("query"))

	inlineSchemaCmd.Flags().BoolP("extract", "x", false, "schema of \"extract --json\" output")
	inlineSchemaCmd.SetOut(os.Stdout)
}
