package scrollbox

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/scrollbox/label"
)

// MarqueeOpts holds the configuration for a Marquee.
type MarqueeOpts struct {
	// Position of the top-left corner on the target display.
	X int
	Y int

	// Box dimensions in pixels. H defaults to the face height so a single
	// line fits exactly.
	W int // Width (default: 100)
	H int // Height (default: ascent+descent of the face)

	// Text is the initial content, rendered as a single line. Control
	// characters have no glyph and are skipped.
	Text string

	// Face renders the text (default: basicfont.Face7x13).
	Face font.Face

	// Colors, same palette scheme as ScrollBox.
	Color                 color.Color // text (default: white)
	Background            color.Color // background (default: black)
	BackgroundTransparent bool        // (default: false)

	// Speed is the scroll speed in pixels per second. Negative values
	// scroll right instead of left (default: 30).
	Speed float64

	// Gap is the blank run between the end of the text and its next pass,
	// in pixels (default: 16).
	Gap int

	// Display, when set, receives the frame whenever it changes.
	Display display.Drawer
}

// Marquee is a single line of text that scrolls horizontally, wrapping
// around with a configurable gap. Text that fits the box entirely is drawn
// once and never moves. Like ScrollBox it implements image.Image and pushes
// to an attached display.Drawer on its own.
//
// Marquee is not safe for concurrent use.
type Marquee struct {
	x, y int
	w, h int

	text  string
	face  font.Face
	speed float64
	gap   int
	disp  display.Drawer

	fg, bg      color.Color
	transparent bool

	frame    *image.Paletted
	rendered *label.Rendered
	baseline int

	// span is the wrap period in pixels, text advance plus gap. Zero means
	// the text fits and stays static.
	span   int
	offset float64
	drawn  int
	last   time.Time
}

// NewMarquee creates a Marquee and draws its initial frame. opts can be nil
// to use the defaults.
func NewMarquee(opts *MarqueeOpts) (*Marquee, error) {
	if opts == nil {
		opts = &MarqueeOpts{}
	}
	o := *opts
	if o.W == 0 {
		o.W = 100
	}
	if o.W < 0 || o.H < 0 {
		return nil, errors.New("scrollbox: width and height must be positive")
	}
	if o.Gap < 0 {
		return nil, errors.New("scrollbox: marquee gap must be non-negative")
	}
	if o.Gap == 0 {
		o.Gap = 16
	}
	if o.Speed == 0 {
		o.Speed = 30
	}
	if o.Face == nil {
		o.Face = basicfont.Face7x13
	}
	if o.Color == nil {
		o.Color = color.White
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	ascent, descent := label.Metrics(o.Face)
	if o.H == 0 {
		o.H = ascent + descent
	}

	m := &Marquee{
		x:           o.X,
		y:           o.Y,
		w:           o.W,
		h:           o.H,
		text:        o.Text,
		face:        o.Face,
		speed:       o.Speed,
		gap:         o.Gap,
		disp:        o.Display,
		fg:          o.Color,
		bg:          o.Background,
		transparent: o.BackgroundTransparent,
		baseline:    ascent + (o.H-ascent-descent)/2,
	}

	pal := color.Palette{o.Background, o.Color}
	if o.BackgroundTransparent {
		pal[0] = color.Transparent
	}
	m.frame = image.NewPaletted(image.Rect(0, 0, o.W, o.H), pal)

	m.render()
	m.draw(0)
	if err := m.push(); err != nil {
		return nil, err
	}
	return m, nil
}

// String implements conn.Resource.
func (m *Marquee) String() string {
	return fmt.Sprintf("scrollbox.Marquee{%dx%d}", m.w, m.h)
}

// ColorModel implements image.Image.
func (m *Marquee) ColorModel() color.Model {
	return m.frame.ColorModel()
}

// Bounds implements image.Image.
func (m *Marquee) Bounds() image.Rectangle {
	return m.frame.Bounds()
}

// At implements image.Image.
func (m *Marquee) At(x, y int) color.Color {
	return m.frame.At(x, y)
}

// Pos returns the top-left corner of the box on the target display.
func (m *Marquee) Pos() image.Point {
	return image.Point{X: m.x, Y: m.y}
}

// SetPos moves the box on the target display.
func (m *Marquee) SetPos(x, y int) {
	m.x = x
	m.y = y
}

// Text returns the current text.
func (m *Marquee) Text() string {
	return m.text
}

// SetText replaces the text and restarts the scroll from the home position.
func (m *Marquee) SetText(text string) error {
	m.text = text
	m.offset = 0
	m.last = time.Time{}
	m.render()
	m.draw(0)
	return m.push()
}

// Color returns the text color.
func (m *Marquee) Color() color.Color {
	return m.fg
}

// SetColor changes the text color through the palette, without touching
// rendered pixels.
func (m *Marquee) SetColor(c color.Color) {
	m.fg = c
	m.frame.Palette[1] = c
}

// Background returns the background color.
func (m *Marquee) Background() color.Color {
	return m.bg
}

// SetBackground changes the background color. It is retained while the
// background is transparent.
func (m *Marquee) SetBackground(c color.Color) {
	m.bg = c
	if !m.transparent {
		m.frame.Palette[0] = c
	}
}

// SetBackgroundTransparent toggles between a fully transparent background
// and the configured background color.
func (m *Marquee) SetBackgroundTransparent(transparent bool) {
	m.transparent = transparent
	if transparent {
		m.frame.Palette[0] = color.Transparent
	} else {
		m.frame.Palette[0] = m.bg
	}
}

// Speed returns the scroll speed in pixels per second.
func (m *Marquee) Speed() float64 {
	return m.speed
}

// SetSpeed changes the scroll speed in pixels per second. Zero freezes the
// marquee in place; negative values scroll right.
func (m *Marquee) SetSpeed(pixelsPerSecond float64) {
	m.speed = pixelsPerSecond
}

// Static reports whether the text fits the box and therefore never moves.
func (m *Marquee) Static() bool {
	return m.span == 0
}

// Offset returns the current scroll offset in pixels, in [0, text width +
// gap). It is 0 while the marquee is static.
func (m *Marquee) Offset() int {
	return m.drawn
}

// Step advances the marquee to now and reports whether the frame changed.
// The first call only pins the clock. The frame is pushed to the attached
// display whenever it changes, so a caller with a ticker needs nothing else.
func (m *Marquee) Step(now time.Time) (bool, error) {
	if m.span == 0 {
		return false, nil
	}
	if m.last.IsZero() {
		m.last = now
		return false, nil
	}
	dt := now.Sub(m.last).Seconds()
	m.last = now
	m.offset = math.Mod(m.offset+m.speed*dt, float64(m.span))
	if m.offset < 0 {
		m.offset += float64(m.span)
	}
	if px := int(m.offset); px != m.drawn {
		m.draw(px)
		return true, m.push()
	}
	return false, nil
}

// Refresh pushes the current frame to the attached display.
func (m *Marquee) Refresh() error {
	if m.disp == nil {
		return errors.New("scrollbox: no display attached")
	}
	return m.push()
}

// render rasterizes the text once and decides between static and scrolling
// mode.
func (m *Marquee) render() {
	m.rendered = label.Render(m.text, m.face)
	m.span = 0
	if m.rendered != nil && m.rendered.Advance > m.w {
		m.span = m.rendered.Advance + m.gap
	}
}

// draw composes the frame for scroll offset px. In scrolling mode two copies
// of the text are blitted so the wrap-around is seamless.
func (m *Marquee) draw(px int) {
	for i := range m.frame.Pix {
		m.frame.Pix[i] = 0
	}
	if m.rendered != nil {
		if m.span == 0 {
			m.blitAt(0)
		} else {
			m.blitAt(-px)
			m.blitAt(m.span - px)
		}
	}
	m.drawn = px
}

// blitAt draws the rendered mask with its left edge at frame column x0,
// clipped to the frame. Only covered pixels are written; the frame was
// cleared beforehand.
func (m *Marquee) blitAt(x0 int) {
	r := m.rendered
	mw, mh := r.Mask.Rect.Dx(), r.Mask.Rect.Dy()
	top := m.baseline + r.AnchorOffset
	for my := 0; my < mh; my++ {
		fy := top + my
		if fy < 0 || fy >= m.h {
			continue
		}
		mrow := r.Mask.Pix[my*r.Mask.Stride:]
		frow := m.frame.Pix[fy*m.frame.Stride:]
		for mx := 0; mx < mw; mx++ {
			fx := x0 + mx
			if fx < 0 || fx >= m.w {
				continue
			}
			if mrow[mx] >= alphaThreshold {
				frow[fx] = 1
			}
		}
	}
}

// push sends the frame to the attached display, if any.
func (m *Marquee) push() error {
	if m.disp == nil {
		return nil
	}
	return m.disp.Draw(image.Rect(m.x, m.y, m.x+m.w, m.y+m.h), m.frame, image.Point{})
}
