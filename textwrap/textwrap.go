// Package textwrap folds text into lines that fit a maximum pixel width.
//
// Widths are measured against a font.Face, so wrapping agrees exactly with
// what a font.Drawer will later render. Lines break at spaces; a single word
// wider than the limit is split at the last rune that still fits, so no
// returned line ever exceeds it.
package textwrap

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measure returns the advance width of text in pixels, rounded up.
func Measure(text string, face font.Face) int {
	return font.MeasureString(face, text).Ceil()
}

// WrapToPixels wraps text so every returned line renders within maxWidth
// pixels of face. Hard line breaks (\n, \r\n, \r) are kept: each paragraph
// wraps independently and blank paragraphs survive as empty lines. Runs of
// spaces at a soft break are consumed; leading spaces are preserved so
// indentation survives.
//
// A maxWidth of zero or less disables wrapping and returns the paragraphs
// as-is.
func WrapToPixels(text string, maxWidth int, face font.Face) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	paragraphs := strings.Split(normalized, "\n")

	if maxWidth <= 0 {
		return paragraphs
	}

	lines := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		lines = append(lines, wrapParagraph(para, maxWidth, face)...)
	}
	return lines
}

// wrapParagraph wraps a single paragraph (no hard breaks) to maxWidth.
func wrapParagraph(para string, maxWidth int, face font.Face) []string {
	runes := []rune(para)
	if len(runes) == 0 {
		return []string{""}
	}

	limit := fixed.I(maxWidth)
	out := make([]string, 0, 1)
	start := 0
	for start < len(runes) {
		end := lineEnd(runes, start, limit, face)
		out = append(out, string(runes[start:end]))
		start = end
		for start < len(runes) && runes[start] == ' ' {
			start++
		}
	}
	return out
}

// lineEnd returns the index just past the last rune of the line starting at
// start. It measures incrementally the same way font.MeasureString does
// (kerning applied between resolvable glyphs, unresolvable runes skipped) and
// breaks at the last space seen, falling back to a rune break for words wider
// than the limit.
func lineEnd(runes []rune, start int, limit fixed.Int26_6, face font.Face) int {
	var advance fixed.Int26_6
	prev := rune(-1)
	lastBreak := -1

	for i := start; i < len(runes); i++ {
		r := runes[i]
		if r == ' ' && i > start {
			lastBreak = i
		}

		if prev >= 0 {
			advance += face.Kern(prev, r)
		}
		a, ok := face.GlyphAdvance(r)
		if !ok {
			continue
		}
		advance += a
		prev = r

		if advance > limit && i > start {
			if lastBreak > start {
				return lastBreak
			}
			return i
		}
	}
	return len(runes)
}
