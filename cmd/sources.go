package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/network"
	"github.com/anisan-cli/streamkit/provider"
	"github.com/anisan-cli/streamkit/style"
	"github.com/anisan-cli/streamkit/util"
	"github.com/anisan-cli/streamkit/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionSourceNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.Customs(), func(p *provider.Provider, _ int) string {
		return p.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func sourcePath(name string) string {
	return filepath.Join(where.Sources(), util.SanitizeFilename(name)+".lua")
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage Lua source scripts",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed source scripts",
	Run: func(cmd *cobra.Command, args []string) {
		providers, err := provider.CustomProviders()
		if err != nil && !os.IsNotExist(err) {
			handleErr(err)
		}

		if lo.Must(cmd.Flags().GetBool("raw")) {
			for _, p := range providers {
				cmd.Println(p.Name)
			}
			return
		}

		cmd.Println(style.New().Foreground(color.HiBlue).Bold(true).Render("Sources:"))
		for _, p := range providers {
			marker := lo.Ternary(p.UsesExtract, " "+style.Faint("(extract)"), "")
			cmd.Printf("%s %s%s\n", icon.Get(icon.Lua), p.Name, marker)
		}
	},
}

var sourcesRemoveCmd = &cobra.Command{
	Use:               "remove [name]...",
	Short:             "Remove installed source scripts",
	ValidArgsFunction: completionSourceNames,
	Run: func(cmd *cobra.Command, args []string) {
		names := append(args, lo.Must(cmd.Flags().GetStringArray("name"))...)
		for _, name := range names {
			handleErr(filesystem.API().Remove(sourcePath(name)))
			done(cmd, "removed %s", style.Fg(color.Yellow)(name))
		}
	},
}

var sourcesUpdateCmd = &cobra.Command{
	Use:   "update [name]...",
	Short: "Download newer versions of source scripts",
	Long: `Download the named scripts, or every installed one, from the sources repository.
Scripts whose content did not change are left untouched.`,
	ValidArgsFunction: completionSourceNames,
	Run: func(cmd *cobra.Command, args []string) {
		names := lo.Ternary(len(args) > 0, args, provider.Installed())
		if len(names) == 0 {
			cmd.Println(icon.Get(icon.Warn), "no sources installed")
			return
		}

		repo := viper.GetString(key.SourcesRepo)
		cmd.Println(icon.Get(icon.Link), style.Faint(repo))

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		erase := util.PrintErasable(fmt.Sprintf("%s Checking %s...", icon.Get(icon.Progress), util.Quantify(len(names), "source", "sources")))
		updated, err := provider.Update(ctx, network.Default(), repo, names)
		erase()
		handleErr(err)

		if len(updated) == 0 {
			done(cmd, "all sources are up to date")
			return
		}
		for _, name := range updated {
			done(cmd, "updated %s", style.Fg(color.Yellow)(util.FileStem(name)))
		}
	},
}

var sourcesGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua source script",
	Long:  `Generate a Lua source script with the required functions and an extract-based EpisodeVideos.`,
	Run: func(cmd *cobra.Command, args []string) {
		scaffold := provider.Scaffold{
			Name: lo.Must(cmd.Flags().GetString("name")),
			URL:  lo.Must(cmd.Flags().GetString("url")),
		}
		if usr, err := user.Current(); err == nil {
			scaffold.Author = usr.Username
		}

		target := sourcePath(scaffold.Name)
		f, err := filesystem.API().Create(target)
		handleErr(err)
		defer util.Ignore(f.Close)

		handleErr(scaffold.Render(f))
		cmd.Println(target)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd, sourcesRemoveCmd, sourcesUpdateCmd, sourcesGenCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "print names only")

	sourcesRemoveCmd.Flags().StringArrayP("name", "n", nil, "source to remove")
	lo.Must0(sourcesRemoveCmd.RegisterFlagCompletionFunc("name", completionSourceNames))

	sourcesUpdateCmd.Flags().StringP("repo", "r", "", "base URL to download scripts from")
	lo.Must0(viper.BindPFlag(key.SourcesRepo, sourcesUpdateCmd.Flags().Lookup("repo")))

	sourcesGenCmd.Flags().StringP("name", "n", "", "name of the new source")
	sourcesGenCmd.Flags().StringP("url", "u", "", "base URL of the site")
	lo.Must0(sourcesGenCmd.MarkFlagRequired("name"))
	lo.Must0(sourcesGenCmd.MarkFlagRequired("url"))

	for _, c := range sourcesCmd.Commands() {
		c.SetOut(os.Stdout)
	}
}
