// Package config registers every setting with its default and loads the toml file through viper.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/icon"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps keys onto environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults, environment variables and the config file.
func Setup() error {
	viper.SetConfigName(constant.Gxplayer)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Gxplayer)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return Validate()
}

// Suggest returns the known key closest to k.
func Suggest(k string) string {
	return lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		da, db := levenshtein.Distance(k, a), levenshtein.Distance(k, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

// Validate checks the values that have a restricted range.
func Validate() error {
	var errs []error

	if v := viper.GetInt(key.PlayerVolume); v < 0 || v > 100 {
		errs = append(errs, fmt.Errorf("%s must be within 0 and 100, got %d", key.PlayerVolume, v))
	}

	if v := viper.GetInt(key.PlayerSeekStep); v <= 0 || v > 100 {
		errs = append(errs, fmt.Errorf("%s must be within 1 and 100, got %d", key.PlayerSeekStep, v))
	}

	if v := viper.GetString(key.LogsLevel); !validLevel(v) {
		errs = append(errs, fmt.Errorf("%s: unknown level %q", key.LogsLevel, v))
	}

	if v := viper.GetString(key.IconsVariant); !lo.Contains(icon.AvailableVariants(), v) {
		errs = append(errs, fmt.Errorf("%s: unknown variant %q", key.IconsVariant, v))
	}

	if v := strings.TrimSpace(viper.GetString(key.YouTubeWidth)); v != "auto" {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("%s must be \"auto\" or a positive integer, got %q", key.YouTubeWidth, v))
		}
	}

	for _, k := range []string{key.MpvSocketWait, key.LoaderPollInterval, key.PlayerFollowInterval} {
		if viper.GetDuration(k) <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive duration", k))
		}
	}

	return errors.Join(errs...)
}

func validLevel(level string) bool {
	_, err := logrus.ParseLevel(level)
	return err == nil
}
