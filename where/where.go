// Package where resolves the application's filesystem locations.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/streamkit/constant"
	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "STREAMKIT_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory: $STREAMKIT_CONFIG_PATH, or the platform user config dir.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache is the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs is where daily log files are written.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Sources holds the Lua extension scripts.
func Sources() string {
	return ensureDir(filepath.Join(Config(), "sources"))
}

// Recent is the file of recently resolved embed URLs.
func Recent() string {
	return filepath.Join(Cache(), "recent.json")
}

// Temp is a volatile directory for transient artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
