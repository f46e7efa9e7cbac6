// Package label renders single lines of text into tight alpha masks.
//
// A mask carries no color: the widget that blits it decides which palette
// entries the covered and uncovered pixels map to. Alongside the mask, a
// Rendered records where the baseline sits so lines of mixed glyph heights
// can be anchored on a common baseline, the same way a typesetter aligns a
// row of sorts.
package label

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Rendered is a rasterized line of text.
type Rendered struct {
	// Mask is the tight coverage mask of the line, with its origin at the
	// top-left of the ink extents.
	Mask *image.Alpha

	// AnchorOffset is the y distance from the baseline to the top of Mask.
	// It is negative for any glyph with ink above the baseline, which is to
	// say almost always.
	AnchorOffset int

	// Advance is the full advance width of the line in pixels, which can
	// exceed Mask's width when the line ends in whitespace.
	Advance int
}

// Render rasterizes text with face. It returns nil when the text has no ink
// extents (the empty string), mirroring how an empty wrapped line occupies
// vertical space without owning pixels.
func Render(text string, face font.Face) *Rendered {
	bounds, advance := font.BoundString(face, text)

	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(color.Opaque),
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(text)

	return &Rendered{
		Mask:         mask,
		AnchorOffset: minY,
		Advance:      advance.Ceil(),
	}
}

// Metrics returns the ascent and descent of face in whole pixels, rounded
// up. Their sum is the natural single-spaced line pitch.
func Metrics(face font.Face) (ascent, descent int) {
	m := face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}
