package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var fields = []Field{
	{key.DefaultSources, []string{}, "Sources queried by inline mode when --source is not given.\nRun \"streamkit sources list\" to see what is installed"},
	{key.SourcesRepo, constant.SourcesRepo, "Base URL that \"streamkit sources update\" downloads scripts from"},

	{key.ExtractPreferredQuality, "1080", "Quality substring moved to the front of video lists (e.g. 1080, 720, Vidbom)"},
	{key.ExtractConcurrency, 4, "How many embed pages are resolved at once. 0 means unbounded"},
	{key.ExtractTimeout, 30, "Timeout in seconds for a single embed request"},
	{key.ExtractRetries, 0, "Retries for failed embed requests. Only transport errors and 5xx responses are retried"},
	{key.ExtractTLSFingerprint, false, "Present a browser TLS fingerprint to embed hosts"},
	{key.ExtractCacheTTL, 120, "Seconds a fetched embed page stays in memory. 0 turns the cache off"},

	{key.NetworkRateLimit, 0, "Requests per second allowed against one host. 0 turns limiting off"},
	{key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent to embed hosts"},

	{key.PlayerName, "mpv", "Player used by \"extract --play\". The system handler is used when it is not in PATH"},
	{key.InlineSortVideos, true, "Order inline videos by the preferred quality"},
	{key.SearchShowURLSuggestions, true, "Offer recently resolved embed URLs in shell completion"},
	{key.IconsVariant, "plain", "Icons variant.\nOne of: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},

	{key.LogsWrite, false, "Write logs"},
	{key.LogsLevel, "info", "Log level, from least to most verbose:\npanic, fatal, error, warn, info, debug, trace"},
	{key.LogsJson, false, "Write logs as json"},

	{key.CliColored, true, "Colored CLI output"},
	{key.CliVersionCheck, true, "Check for a newer release on startup"},
}

// Default indexes every known field by key.
var Default = make(map[string]Field, len(fields))

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	for _, f := range fields {
		if _, dup := Default[f.Key]; dup {
			panic("config: duplicate key " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}
}

// Lookup returns the field for k. Unknown keys yield an error naming
// the closest known key.
func Lookup(k string) (Field, error) {
	if f, ok := Default[k]; ok {
		return f, nil
	}

	closest := lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
	return Field{}, fmt.Errorf("unknown key %s, did you mean %s?", k, closest)
}

// Path is where the config file lives.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Write persists the current values, creating the file when it is missing.
func Write() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}
