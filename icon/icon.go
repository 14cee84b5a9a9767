// Package icon renders the player symbols in the variant picked by the user:
// emoji, nerd-font glyphs, plain ASCII, kaomoji or unicode squares.
package icon

import (
	"github.com/gxplayer/gxplayer/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get renders d in the configured variant, empty for an unknown one.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders i in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol.
type Icon int

const (
	Play Icon = iota
	Pause
	Buffering
	Ended
	Volume
	Muted
	Error
	Success
	Fail
	Progress
	Script
)

var icons = map[Icon]*iconDef{
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "\uf04c",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "⏸",
	},
	Buffering: {
		emoji:   "⏳",
		nerd:    "\uf252",
		plain:   "...",
		kaomoji: "(・_・;)",
		squares: "◧",
	},
	Ended: {
		emoji:   "⏹️",
		nerd:    "\uf04d",
		plain:   "[]",
		kaomoji: "(￣▽￣)ノ",
		squares: "■",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "\uf028",
		plain:   "vol",
		kaomoji: "ヽ(o^▽^o)ノ",
		squares: "◨",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "\uf026",
		plain:   "mute",
		kaomoji: "(￣ー￣)",
		squares: "□",
	},
	Error: {
		emoji:   "❗",
		nerd:    "\uf071",
		plain:   "!",
		kaomoji: "(×_×)",
		squares: "▣",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "X",
		kaomoji: "(╯°□°）╯︵ ┻━┻",
		squares: "▨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "~",
		kaomoji: "┬─┬ノ( º _ ºノ)",
		squares: "▦",
	},
	Script: {
		emoji:   "📜",
		nerd:    "\ue620",
		plain:   "S",
		kaomoji: "(￣ω￣;)",
		squares: "▤",
	},
}
