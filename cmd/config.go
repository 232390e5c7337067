package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/anisan-cli/streamkit/color"
	"github.com/anisan-cli/streamkit/config"
	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/icon"
	"github.com/anisan-cli/streamkit/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// configKey takes the key from the first argument or, failing that, the --key flag.
func configKey(cmd *cobra.Command, args []string) config.Field {
	name := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}

	field, err := config.Lookup(name)
	handleErr(err)
	return field
}

func done(cmd *cobra.Command, format string, args ...any) {
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, args...))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe configuration fields",
	Run: func(cmd *cobra.Command, args []string) {
		var fields []config.Field
		for _, name := range lo.Must(cmd.Flags().GetStringSlice("key")) {
			field, err := config.Lookup(name)
			handleErr(err)
			fields = append(fields, field)
		}
		if len(fields) == 0 {
			fields = lo.Values(config.Default)
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Key < fields[j].Key })

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		pretty := lo.Map(fields, func(f config.Field, _ int) string { return f.Pretty() })
		for i, block := range pretty {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(block)
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change the value of a configuration key",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field := configKey(cmd, args)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		value, err := field.Parse(raw)
		handleErr(err)

		viper.Set(field.Key, value)
		handleErr(config.Write())
		done(cmd, "set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a configuration key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(viper.Get(configKey(cmd, args).Key))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the current configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("force")) {
			err := filesystem.API().Remove(config.Path())
			if !os.IsNotExist(err) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		done(cmd, "wrote config to %s", config.Path())
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.Path()))
		done(cmd, "deleted config")
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore defaults for one key or all of them",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for _, field := range config.Default {
				viper.Set(field.Key, field.Value)
			}
			handleErr(config.Write())
			done(cmd, "reset all config values")
			return
		}

		field := configKey(cmd, args)
		viper.Set(field.Key, field.Value)
		handleErr(config.Write())
		done(cmd, "reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configSetCmd, configGetCmd, configWriteCmd, configDeleteCmd, configResetCmd)

	for _, c := range []*cobra.Command{configSetCmd, configGetCmd, configResetCmd} {
		c.Flags().StringP("key", "k", "", "configuration key")
		_ = c.RegisterFlagCompletionFunc("key", completionConfigKeys)
		c.SetOut(os.Stdout)
	}

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "print fields as json")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configSetCmd.Flags().StringSliceP("value", "v", nil, "value to assign, repeat for list keys")
	configWriteCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")
	configResetCmd.Flags().BoolP("all", "a", false, "reset every key")

	for _, c := range []*cobra.Command{configInfoCmd, configWriteCmd, configDeleteCmd} {
		c.SetOut(os.Stdout)
	}
}
