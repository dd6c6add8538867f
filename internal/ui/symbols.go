package ui

import "github.com/muesli/termenv"

// GlyphSet is the character vocabulary of the dashboard. The full set uses
// Unicode block characters; the ASCII set works on terminals and fonts that
// cannot render them.
type GlyphSet struct {
	// Blocks are the vertical levels of the sparkline, lowest to highest.
	Blocks []rune

	Loss     string // sparkline slot for a lost probe
	Fail     string // error prefix
	Paused   string // host probing suspended
	Burst    string // host in burst mode
	Selected string // cursor marker in the host list
	SortAsc  string
	SortDesc string
}

// FullGlyphs is the default Unicode vocabulary.
var FullGlyphs = GlyphSet{
	Blocks:   []rune("▁▂▃▄▅▆▇█"),
	Loss:     "!",
	Fail:     "✗",
	Paused:   "⏸",
	Burst:    "»",
	Selected: "▶",
	SortAsc:  "▲",
	SortDesc: "▼",
}

// ASCIIGlyphs renders on any terminal.
var ASCIIGlyphs = GlyphSet{
	Blocks:   []rune("_.-=+*#%"),
	Loss:     "!",
	Fail:     "x",
	Paused:   "=",
	Burst:    ">",
	Selected: ">",
	SortAsc:  "^",
	SortDesc: "v",
}

// DetectGlyphs picks the glyph set once at startup. forceASCII wins; otherwise
// a terminal without any color/Unicode capability gets the ASCII set.
func DetectGlyphs(forceASCII bool) GlyphSet {
	if forceASCII || termenv.EnvColorProfile() == termenv.Ascii {
		return ASCIIGlyphs
	}
	return FullGlyphs
}
