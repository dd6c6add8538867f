package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/pingboard/internal/stats"
)

func ok(ms int) stats.Sample {
	return stats.Sample{Latency: time.Duration(ms) * time.Millisecond}
}

// stripANSI removes color escape sequences so tests can compare glyphs.
func stripANSI(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func TestSparklineEmpty(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, FullGlyphs))
	assert.Empty(t, RenderSparkline([]stats.Sample{ok(1)}, 0, FullGlyphs))
}

func TestSparklineLevels(t *testing.T) {
	samples := []stats.Sample{ok(10), ok(50), ok(100)}
	got := stripANSI(RenderSparkline(samples, 10, FullGlyphs))

	runes := []rune(got)
	assert.Len(t, runes, 3)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[2])
}

func TestSparklineFlatWindow(t *testing.T) {
	samples := []stats.Sample{ok(25), ok(25), ok(25)}
	got := stripANSI(RenderSparkline(samples, 10, FullGlyphs))
	mid := FullGlyphs.Blocks[len(FullGlyphs.Blocks)/2]
	assert.Equal(t, strings.Repeat(string(mid), 3), got)
}

func TestSparklineLossGlyph(t *testing.T) {
	samples := []stats.Sample{ok(10), {Lost: true}, ok(20)}
	got := stripANSI(RenderSparkline(samples, 10, FullGlyphs))
	assert.Contains(t, got, FullGlyphs.Loss)
}

func TestSparklineWindowing(t *testing.T) {
	samples := []stats.Sample{ok(1), ok(2), ok(3), ok(4), ok(5)}
	got := stripANSI(RenderSparkline(samples, 2, FullGlyphs))
	assert.Len(t, []rune(got), 2)
}

func TestSparklineASCIIPurity(t *testing.T) {
	samples := []stats.Sample{ok(10), {Lost: true}, {Latency: 5 * time.Millisecond, Refused: true}, ok(90)}
	got := stripANSI(RenderSparkline(samples, 10, ASCIIGlyphs))
	for _, r := range got {
		assert.Less(t, r, rune(128), "non-ASCII rune %q in ASCII mode", r)
	}
}

func TestDetectGlyphsForced(t *testing.T) {
	assert.Equal(t, ASCIIGlyphs.Loss, DetectGlyphs(true).Loss)
	assert.Equal(t, string(ASCIIGlyphs.Blocks), string(DetectGlyphs(true).Blocks))
}

func TestFormatLatency(t *testing.T) {
	assert.Equal(t, "-", FormatLatency(0))
	assert.Equal(t, "0.50ms", FormatLatency(500*time.Microsecond))
	assert.Equal(t, "12.3ms", FormatLatency(12300*time.Microsecond))
}

func TestFormatLoss(t *testing.T) {
	assert.Equal(t, "25%", FormatLoss(0.25))
	assert.Equal(t, "0%", FormatLoss(0))
}
