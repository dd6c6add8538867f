package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pingboard/internal/stats"
)

// RenderSparkline draws the latency history as one colored glyph per sample,
// oldest on the left. The width parameter determines how many of the most
// recent samples to display. Latencies are mapped to the glyph set's vertical
// levels over the window's own min/max range; lost probes render as the loss
// glyph in red, refused connections keep their latency level but turn yellow.
func RenderSparkline(samples []stats.Sample, width int, glyphs GlyphSet) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	minLat, maxLat := latencyRange(samples)

	okStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	lossStyle := lipgloss.NewStyle().Foreground(ColorError)
	refusedStyle := lipgloss.NewStyle().Foreground(ColorWarning)

	var sb strings.Builder
	sb.Grow(len(samples) * 16) // block runes plus per-rune color escapes

	for _, s := range samples {
		switch {
		case s.Lost:
			sb.WriteString(lossStyle.Render(glyphs.Loss))
		case s.Refused:
			sb.WriteString(refusedStyle.Render(string(levelGlyph(s.Latency, minLat, maxLat, glyphs))))
		default:
			sb.WriteString(okStyle.Render(string(levelGlyph(s.Latency, minLat, maxLat, glyphs))))
		}
	}
	return sb.String()
}

// latencyRange finds the min and max latency over the received samples in the
// window. Lost samples carry no latency and are excluded.
func latencyRange(samples []stats.Sample) (time.Duration, time.Duration) {
	var minLat, maxLat time.Duration
	seen := false
	for _, s := range samples {
		if s.Lost {
			continue
		}
		if !seen || s.Latency < minLat {
			minLat = s.Latency
		}
		if s.Latency > maxLat {
			maxLat = s.Latency
		}
		seen = true
	}
	return minLat, maxLat
}

// levelGlyph maps a latency onto the glyph set's vertical levels. A flat
// window (all samples equal) sits at the middle level.
func levelGlyph(lat, minLat, maxLat time.Duration, glyphs GlyphSet) rune {
	n := len(glyphs.Blocks)
	span := maxLat - minLat
	if span == 0 {
		return glyphs.Blocks[n/2]
	}
	level := int(float64(lat-minLat) / float64(span) * float64(n-1))
	if level < 0 {
		level = 0
	} else if level >= n {
		level = n - 1
	}
	return glyphs.Blocks[level]
}
