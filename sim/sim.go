// Package sim provides an in-memory display for developing against without
// hardware. It implements the display.Drawer interface from periph.io and
// renders its frame buffer to a terminal using half-block characters, two
// pixel rows per text line.
package sim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
)

// Display is a fake panel backed by an NRGBA frame buffer. It accepts the
// same Draw calls a periph.io display driver does and turns the frame into
// ANSI truecolor output on demand.
//
// Display is not safe for concurrent use.
type Display struct {
	rect   image.Rectangle
	fb     *image.NRGBA
	halted bool
}

// New returns a Display with a w×h frame buffer. The height must be even
// because every terminal cell renders two pixel rows.
func New(w, h int) (*Display, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("sim: width and height must be positive")
	}
	if h%2 != 0 {
		return nil, errors.New("sim: height must be even")
	}
	r := image.Rect(0, 0, w, h)
	return &Display{
		rect: r,
		fb:   image.NewNRGBA(r),
	}, nil
}

// String implements conn.Resource.
func (d *Display) String() string {
	return fmt.Sprintf("sim.Display{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// Halt blanks the frame buffer and stops accepting draws, mirroring a
// hardware panel being shut down.
func (d *Display) Halt() error {
	for i := range d.fb.Pix {
		d.fb.Pix[i] = 0
	}
	d.halted = true
	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer. The destination rectangle is clipped to
// the display bounds; pixels are copied without blending, like a panel
// overwriting its RAM.
func (d *Display) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("sim: display is halted")
	}
	clipped := r.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	sp = sp.Add(clipped.Min.Sub(r.Min))
	draw.Draw(d.fb, clipped, src, sp, draw.Src)
	return nil
}

// Render returns the frame as ANSI truecolor text, one line per two pixel
// rows. Each cell is an upper half-block with the foreground set to the top
// pixel and the background to the bottom pixel. Repeated colors reuse the
// active escape state to keep the output small.
func (d *Display) Render() string {
	w, h := d.rect.Dx(), d.rect.Dy()
	var b strings.Builder
	b.Grow(h / 2 * (w*20 + 8))
	for y := 0; y < h; y += 2 {
		lastFg, lastBg := color.NRGBA{}, color.NRGBA{}
		for x := 0; x < w; x++ {
			fg := premultiply(d.fb.NRGBAAt(x, y))
			bg := premultiply(d.fb.NRGBAAt(x, y+1))
			if x == 0 || fg != lastFg {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", fg.R, fg.G, fg.B)
				lastFg = fg
			}
			if x == 0 || bg != lastBg {
				fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", bg.R, bg.G, bg.B)
				lastBg = bg
			}
			b.WriteRune('▀')
		}
		b.WriteString("\x1b[0m\n")
	}
	return b.String()
}

// Frame exposes the frame buffer as an image, mainly for tests and for
// compositing the simulated panel into a larger scene.
func (d *Display) Frame() image.Image {
	return d.fb
}

// premultiply folds alpha into the channels against a black terminal
// background, which is how a panel with no backlight bleed shows partially
// transparent content.
func premultiply(c color.NRGBA) color.NRGBA {
	if c.A == 0xff {
		return c
	}
	return color.NRGBA{
		R: uint8(uint32(c.R) * uint32(c.A) / 0xff),
		G: uint8(uint32(c.G) * uint32(c.A) / 0xff),
		B: uint8(uint32(c.B) * uint32(c.A) / 0xff),
		A: 0xff,
	}
}
