package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/config"
	"github.com/anisan-cli/streamkit/extractor"
	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/log"
	"github.com/anisan-cli/streamkit/player"
	"github.com/anisan-cli/streamkit/quality"
	"github.com/anisan-cli/streamkit/recent"
	"github.com/anisan-cli/streamkit/resolve"
	"github.com/anisan-cli/streamkit/source"
	"github.com/anisan-cli/streamkit/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolP("json", "j", false, "Print the videos as JSON")
	extractCmd.Flags().StringP("prefer", "p", "", "Quality substring moved to the front (defaults to "+key.ExtractPreferredQuality+")")
	extractCmd.Flags().StringP("extractor", "x", "", "Use this extractor regardless of the URL host")
	extractCmd.Flags().StringToStringP("header", "H", map[string]string{}, "Extra request header, e.g. -H Referer=https://site.example/")

	extractCmd.Flags().BoolP("play", "P", false, "Play the first video after sorting")
	extractCmd.Flags().BoolP("sort-resolution", "r", false, "Order videos from the highest resolution down before applying --prefer")
	extractCmd.SetOut(os.Stdout)

	lo.Must0(extractCmd.RegisterFlagCompletionFunc("extractor", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return extractor.Default().Names(), cobra.ShellCompDirectiveNoFileComp
	}))
}

var extractCmd = &cobra.Command{
	Use:   "extract <url>...",
	Short: "Resolve embed URLs to playable video streams",
	Long: `Fetch every embed page, unpack its player script and print the streams found.
URLs are resolved concurrently; a URL that fails is skipped and logged.`,
	Example: "  streamkit extract https://uqload.io/embed-xyz.html https://vidbom.com/embed-abc",
	Args:    cobra.MinimumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return recent.Suggest(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		registry := extractor.Default()
		headers := lo.Must(cmd.Flags().GetStringToString("header"))

		var forced *extractor.Extractor
		if name := lo.Must(cmd.Flags().GetString("extractor")); name != "" {
			e, ok := registry.Get(name)
			if !ok {
				handleErr(fmt.Errorf("unknown extractor %s, available: %v", name, registry.Names()))
			}
			forced = e.WithHeaders(headers)
		}

		var resolved sync.Map
		fn := func(ctx context.Context, server source.Server) ([]*source.Video, error) {
			var (
				videos []*source.Video
				err    error
			)
			if forced != nil {
				videos, err = forced.Resolve(ctx, server.URL)
			} else {
				videos, err = registry.ResolveWithHeaders(ctx, server.URL, headers)
			}

			if err == nil && len(videos) > 0 {
				resolved.Store(server.URL, true)
			}
			return videos, err
		}

		ctx, cancel := extractContext(cmd.Context(), len(args))
		defer cancel()

		servers := lo.Map(args, func(u string, _ int) source.Server { return source.Server{URL: u} })
		videos := resolve.All(ctx, servers, fn, viper.GetInt(key.ExtractConcurrency))

		for _, u := range args {
			if _, ok := resolved.Load(u); ok {
				if err := recent.Remember(u); err != nil {
					log.Warnf("remember %s: %v", u, err)
				}
			}
		}

		if len(videos) == 0 {
			handleErr(errors.New("no videos found"))
		}

		prefer := lo.Must(cmd.Flags().GetString("prefer"))
		if prefer == "" {
			prefer = viper.GetString(key.ExtractPreferredQuality)
		}
		if lo.Must(cmd.Flags().GetBool("sort-resolution")) {
			quality.SortByResolution(videos)
		}
		videos = quality.Prefer(videos, prefer)

		if lo.Must(cmd.Flags().GetBool("play")) {
			p := player.Find(viper.GetString(key.PlayerName))
			handleErr(p.Play(videos[0], videos[0].Quality))
			cmd.Printf("%s playing %s with %s\n", icon.Get(icon.Video), videos[0], p.Name())
			return
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(videos))
			return
		}

		for _, v := range videos {
			label := style.Fg(color.ForHeight(quality.Resolution(v.Quality)))(v.Quality)
			cmd.Printf("%s\t%s\n", label, v.URL)
		}
	},
}

// extractContext bounds the whole run by one request timeout per URL, and at least two.
func extractContext(parent context.Context, urls int) (context.Context, context.CancelFunc) {
	timeout := config.ExtractTimeout()
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout*time.Duration(max(urls, 2)))
}
