// Package icon renders status symbols in the variant chosen by icons.variant.
package icon

import (
	"github.com/anisan-cli/streamkit/key"
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

// Icon identifies a symbol.
type Icon int

const (
	Lua Icon = iota
	Go
	Progress
	Success
	Fail
	Warn
	Video
	Link
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Lua:      {emoji: "🌙", nerd: "", plain: "Lua", kaomoji: "(=^･ω･^=)", squares: "🟦"},
	Go:       {emoji: "🐹", nerd: "", plain: "Go", kaomoji: "ʕ•ᴥ•ʔ", squares: "🟦"},
	Progress: {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(・_・ヾ", squares: "🟨"},
	Success:  {emoji: "🎉", nerd: "", plain: "ok", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:     {emoji: "💀", nerd: "", plain: "fail", kaomoji: "(×﹏×)", squares: "🟥"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(°ロ°)", squares: "🟧"},
	Video:    {emoji: "🎬", nerd: "", plain: ">", kaomoji: "(▀̿Ĺ̯▀̿)", squares: "🟪"},
	Link:     {emoji: "🔗", nerd: "", plain: "@", kaomoji: "(っ˘ω˘ς)", squares: "⬜"},
}

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

// Get renders i in the configured variant. Unknown variants render as "".
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
