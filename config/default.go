package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/gxplayer/gxplayer/constant"
	"github.com/gxplayer/gxplayer/key"
	"github.com/gxplayer/gxplayer/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a configuration key with its default value.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for the terminal.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable overriding the field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Gxplayer + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
		Env         string `json:"env"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.TypeName(),
		Env:         f.Env(),
	})
}

// TypeName names the type of the default value.
func (f *Field) TypeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case time.Duration:
		return "duration"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Parse converts raw command line values into the field type.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: no value given", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return values[0], nil
	case int:
		v, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer value: %s", f.Key, values[0])
		}
		return v, nil
	case bool:
		v, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean value: %s", f.Key, values[0])
		}
		return v, nil
	case time.Duration:
		v, err := time.ParseDuration(values[0])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid duration value: %s", f.Key, values[0])
		}
		// stored as text, toml has no duration type
		return v.String(), nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("%s: unsupported type %T", f.Key, f.Value)
	}
}

// Default holds every known field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerVolume, 100, "Initial volume, from 0 to 100")
	register(key.PlayerSeekStep, 5, "Percentage of the media skipped by the seek keys")
	register(key.PlayerFollowInterval, time.Second, "How often the YouTube widget position is polled")

	register(key.MpvBinary, "mpv", "mpv executable, a name looked up in PATH or a full path")
	register(key.MpvSocketWait, 3*time.Second, "How long to wait for the mpv IPC socket")
	register(key.MpvExtraArgs, []string{}, "Extra arguments passed to mpv")

	register(key.LoaderPollInterval, 100*time.Millisecond, "How often a loading script is checked for its property")
	register(key.LoaderMaxWait, 10*time.Second, "Give up on a script whose property did not appear in time.\n0 waits forever")
	register(key.LoaderCacheTTL, 24*time.Hour, "How long downloaded scripts are cached")

	register(key.YouTubeSDKURL, constant.YouTubeSDKURL, "Where the YouTube SDK is loaded from")
	register(key.YouTubeSDKProperty, constant.YouTubeSDKProperty, "Global defined by the YouTube SDK once it is usable")
	register(key.YouTubeWrapperID, constant.YouTubeWrapperID, "Id of the element wrapping the widget")
	register(key.YouTubeEmbedID, constant.YouTubeEmbedID, "Id of the element replaced by the widget")
	register(key.YouTubeWidth, strconv.Itoa(constant.YouTubeWidth), "Widget width in pixels.\n\"auto\" fills the wrapper and derives the height")
	register(key.YouTubeHeight, constant.YouTubeHeight, "Widget height in pixels")

	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")

	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(style.Purple),
	"blue":     style.Fg(style.Blue),
	"cyan":     style.Fg(style.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(style.Green)(b)
			}
			return style.Fg(style.Red)(b)
		case string:
			return style.Fg(style.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
