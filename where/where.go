// Package where resolves the filesystem locations used by gxplayer.
package where

import (
	"os"
	"path/filepath"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "GXPLAYER_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config is the configuration directory, honouring GXPLAYER_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Gxplayer))
}

// ConfigFile is the TOML file viper reads and writes.
func ConfigFile() string {
	return filepath.Join(Config(), constant.Gxplayer+".toml")
}

// Cache is the persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Gxplayer))
}

// Logs is where daily log files are written.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts holds local SDK scripts that the loader can bootstrap.
func Scripts() string {
	return ensureDir(filepath.Join(Config(), "scripts"))
}

// ScriptCache is the gache file holding remote scripts fetched by the loader.
func ScriptCache() string {
	return filepath.Join(Cache(), "scripts.json")
}

// Temp is a volatile directory for mpv IPC sockets.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Gxplayer))
}
