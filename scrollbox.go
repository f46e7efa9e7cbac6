package scrollbox

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/scrollbox/easing"
	"github.com/flavioheleno/scrollbox/label"
	"github.com/flavioheleno/scrollbox/textwrap"
)

// alphaThreshold is the mask coverage above which a pixel maps to the text
// palette entry. Half coverage gives stable edges for both bilevel and
// antialiased faces.
const alphaThreshold = 0x80

// Opts holds the configuration for a ScrollBox.
type Opts struct {
	// Position of the top-left corner on the target display.
	X int
	Y int

	// Box dimensions in pixels.
	W int // Width (default: 100)
	H int // Height (default: 50)

	// Inset of the text within the box. Text wraps to W-XOffset pixels and
	// the first line starts YOffset rows into text space.
	XOffset int // (default: 0)
	YOffset int // (default: 0)

	// Text is the initial content.
	Text string

	// Face renders the text (default: basicfont.Face7x13). The ScrollBox
	// does not close or otherwise own the face.
	Face font.Face

	// Colors. Rendering goes through a two entry palette, so changing a
	// color later never re-rasterizes text.
	Color                 color.Color // text (default: white)
	Background            color.Color // background (default: black)
	BackgroundTransparent bool        // background pixels fully transparent (default: false)

	// LineSpacing scales the line pitch. The pitch in pixels is
	// round((ascent+descent) * LineSpacing) (default: 1.0).
	LineSpacing float64

	// StartRow is the text-space row initially aligned with the top edge,
	// clamped to [0, MaxRow] (default: 0).
	StartRow int

	// AnimationTime is the duration used by Scroll and ScrollTo
	// (default: 200ms).
	AnimationTime time.Duration

	// Easing shapes animated scrolls (default: easing.InOutExpo).
	// Overshooting functions such as easing.OutBack are flattened against
	// the ends of the scroll range.
	Easing easing.Function

	// FrameInterval is the redraw cadence of the blocking scroll calls
	// (default: 16ms, roughly 60 frames per second).
	FrameInterval time.Duration

	// CacheSize bounds the number of rasterized lines kept in memory
	// (default: 32).
	CacheSize int

	// Display, when set, receives the frame after every redraw. Leave nil
	// to use the ScrollBox as a plain image composed by the caller.
	Display display.Drawer
}

// line is one wrapped line of text positioned in text space.
type line struct {
	text   string
	top    int // first row of the line box
	anchor int // baseline row
	bottom int // row just past the descender
}

// span is a half-open range of text-space rows pending redraw.
type span struct {
	lo, hi int
	ok     bool
}

// animation is an in-flight scroll. The start time is pinned by the first
// Step call so tick-driven callers control the clock.
type animation struct {
	from     int
	delta    int
	duration time.Duration
	start    time.Time
	started  bool
}

// ScrollBox is a rectangular region that renders word-wrapped text and
// scrolls it vertically, with optional easing animation. It implements
// image.Image so a host compositor can place it anywhere; when a
// display.Drawer is attached it also pushes every redraw to the display on
// its own.
//
// ScrollBox is not safe for concurrent use.
type ScrollBox struct {
	x, y             int
	w, h             int
	xOffset, yOffset int

	text          string
	face          font.Face
	lineSpacing   float64
	animationTime time.Duration
	frameInterval time.Duration
	ease          easing.Function
	disp          display.Drawer

	fg, bg      color.Color
	transparent bool

	// frame holds the composed pixels as palette indices: 0 background,
	// 1 text.
	frame *image.Paletted

	lines  []line
	pitch  int
	maxRow int
	cur    int

	cache *lru.Cache[int, *label.Rendered]

	dirty span
	anim  *animation
}

// New creates a ScrollBox and draws its initial frame. opts can be nil to
// use the defaults: a 100x50 box rendering white text on black with the
// builtin 7x13 face.
func New(opts *Opts) (*ScrollBox, error) {
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.W == 0 {
		o.W = 100
	}
	if o.H == 0 {
		o.H = 50
	}
	if o.W < 0 || o.H < 0 {
		return nil, errors.New("scrollbox: width and height must be positive")
	}
	if o.XOffset < 0 || o.YOffset < 0 {
		return nil, errors.New("scrollbox: text offsets must be non-negative")
	}
	if o.XOffset >= o.W {
		return nil, errors.New("scrollbox: x offset must leave room for text")
	}
	if o.LineSpacing < 0 {
		return nil, errors.New("scrollbox: line spacing must be positive")
	}
	if o.LineSpacing == 0 {
		o.LineSpacing = 1.0
	}
	if o.CacheSize < 0 {
		return nil, errors.New("scrollbox: cache size must be positive")
	}
	if o.CacheSize == 0 {
		o.CacheSize = 32
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
	if o.AnimationTime == 0 {
		o.AnimationTime = 200 * time.Millisecond
	}
	if o.Easing == nil {
		o.Easing = easing.InOutExpo
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = 16 * time.Millisecond
	}
	cache, err := lru.New[int, *label.Rendered](o.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("scrollbox: line cache: %w", err)
	}

	s := &ScrollBox{
		x:             o.X,
		y:             o.Y,
		w:             o.W,
		h:             o.H,
		xOffset:       o.XOffset,
		yOffset:       o.YOffset,
		text:          o.Text,
		face:          o.Face,
		lineSpacing:   o.LineSpacing,
		animationTime: o.AnimationTime,
		frameInterval: o.FrameInterval,
		ease:          o.Easing,
		disp:          o.Display,
		fg:            o.Color,
		bg:            o.Background,
		transparent:   o.BackgroundTransparent,
		cache:         cache,
	}

	pal := color.Palette{o.Background, o.Color}
	if o.BackgroundTransparent {
		pal[0] = color.Transparent
	}
	s.frame = image.NewPaletted(image.Rect(0, 0, o.W, o.H), pal)

	s.layout()
	s.cur = clamp(o.StartRow, 0, s.maxRow)
	s.resetDirty()
	s.drawAt(s.cur)
	s.dirty = span{}
	if err := s.push(); err != nil {
		return nil, err
	}
	return s, nil
}

// String implements conn.Resource.
func (s *ScrollBox) String() string {
	return fmt.Sprintf("scrollbox.ScrollBox{%dx%d}", s.w, s.h)
}

// Halt cancels any in-flight scroll. It implements conn.Resource; the
// attached display, if any, is left untouched.
func (s *ScrollBox) Halt() error {
	s.anim = nil
	return nil
}

// ColorModel implements image.Image.
func (s *ScrollBox) ColorModel() color.Model {
	return s.frame.ColorModel()
}

// Bounds implements image.Image. The returned rectangle is the box size,
// anchored at the origin; use Pos for the placement on the display.
func (s *ScrollBox) Bounds() image.Rectangle {
	return s.frame.Bounds()
}

// At implements image.Image.
func (s *ScrollBox) At(x, y int) color.Color {
	return s.frame.At(x, y)
}

// Pos returns the top-left corner of the box on the target display.
func (s *ScrollBox) Pos() image.Point {
	return image.Point{X: s.x, Y: s.y}
}

// SetPos moves the box on the target display. The change takes effect on the
// next redraw or Refresh.
func (s *ScrollBox) SetPos(x, y int) {
	s.x = x
	s.y = y
}

// Text returns the current text.
func (s *ScrollBox) Text() string {
	return s.text
}

// SetText replaces the text, rewraps it and jumps back to row 0.
func (s *ScrollBox) SetText(text string) error {
	s.text = text
	return s.relayout()
}

// Face returns the current font face.
func (s *ScrollBox) Face() font.Face {
	return s.face
}

// SetFace replaces the font face, rewraps the text and jumps back to row 0.
func (s *ScrollBox) SetFace(face font.Face) error {
	if face == nil {
		return errors.New("scrollbox: face must not be nil")
	}
	s.face = face
	return s.relayout()
}

// Color returns the text color.
func (s *ScrollBox) Color() color.Color {
	return s.fg
}

// SetColor changes the text color. Only the palette is touched, so already
// rendered frames recolor without a re-rasterization; the change shows on
// the next redraw or Refresh.
func (s *ScrollBox) SetColor(c color.Color) {
	s.fg = c
	s.frame.Palette[1] = c
}

// Background returns the background color.
func (s *ScrollBox) Background() color.Color {
	return s.bg
}

// SetBackground changes the background color. The color is retained while
// the background is transparent and restored when it is made opaque again.
func (s *ScrollBox) SetBackground(c color.Color) {
	s.bg = c
	if !s.transparent {
		s.frame.Palette[0] = c
	}
}

// BackgroundTransparent reports whether background pixels are transparent.
func (s *ScrollBox) BackgroundTransparent() bool {
	return s.transparent
}

// SetBackgroundTransparent toggles between a fully transparent background
// and the configured background color.
func (s *ScrollBox) SetBackgroundTransparent(transparent bool) {
	s.transparent = transparent
	if transparent {
		s.frame.Palette[0] = color.Transparent
	} else {
		s.frame.Palette[0] = s.bg
	}
}

// CurrentRow returns the text-space row aligned with the top edge of the
// box.
func (s *ScrollBox) CurrentRow() int {
	return s.cur
}

// LinePitch returns the distance between consecutive line tops in pixels.
// Scrolling by this amount advances exactly one line.
func (s *ScrollBox) LinePitch() int {
	return s.pitch
}

// MaxRow returns the largest valid scroll row. At MaxRow the text has
// scrolled fully out of the box.
func (s *ScrollBox) MaxRow() int {
	return s.maxRow
}

// Scrolling reports whether a scroll animation is in flight.
func (s *ScrollBox) Scrolling() bool {
	return s.anim != nil
}

// Scroll scrolls by dy rows over the configured animation time, blocking
// until the animation completes. Positive dy moves the text up (the view
// moves down). The destination is clamped to [0, MaxRow].
func (s *ScrollBox) Scroll(dy int) error {
	return s.ScrollOver(dy, s.animationTime)
}

// ScrollTo scrolls to an absolute row over the configured animation time,
// blocking until the animation completes.
func (s *ScrollBox) ScrollTo(row int) error {
	return s.ScrollToOver(row, s.animationTime)
}

// ScrollToOver scrolls to an absolute row over d, blocking until the
// animation completes. A non-positive d jumps immediately.
func (s *ScrollBox) ScrollToOver(row int, d time.Duration) error {
	return s.ScrollOver(row-s.cur, d)
}

// ScrollOver scrolls by dy rows over d, blocking until the animation
// completes. A non-positive d jumps immediately. The internal ticker runs at
// the configured frame interval; tick-driven callers should use StartScroll
// and Step instead.
func (s *ScrollBox) ScrollOver(dy int, d time.Duration) error {
	s.StartScroll(dy, d)
	done, err := s.Step(time.Now())
	if err != nil || done {
		return err
	}
	tick := time.NewTicker(s.frameInterval)
	defer tick.Stop()
	for now := range tick.C {
		done, err = s.Step(now)
		if err != nil || done {
			return err
		}
	}
	return nil
}

// StartScroll arms a scroll by dy rows over d without blocking, replacing
// any scroll already in flight. The caller then drives the animation by
// calling Step once per frame; the first Step pins the start time.
//
// A non-positive d makes the next Step jump straight to the destination.
func (s *ScrollBox) StartScroll(dy int, d time.Duration) {
	Logger().Debug("scrollbox: scroll", "from", s.cur, "by", dy, "duration", d)
	s.extendDirty(dy)
	s.anim = &animation{from: s.cur, delta: dy, duration: d}
}

// Step advances the in-flight scroll to now, redraws and pushes the frame to
// the attached display. It reports true once the animation has completed;
// with no scroll in flight it reports true without drawing.
func (s *ScrollBox) Step(now time.Time) (bool, error) {
	a := s.anim
	if a == nil {
		return true, nil
	}
	if !a.started {
		a.started = true
		a.start = now
	}
	if elapsed := now.Sub(a.start); a.duration > 0 && elapsed < a.duration {
		t := float64(elapsed) / float64(a.duration)
		s.drawAt(a.from + int(math.Round(s.ease(t)*float64(a.delta))))
		return false, s.push()
	}
	s.drawAt(a.from + a.delta)
	s.dirty = span{}
	s.anim = nil
	return true, s.push()
}

// Refresh pushes the current frame to the attached display.
func (s *ScrollBox) Refresh() error {
	if s.disp == nil {
		return errors.New("scrollbox: no display attached")
	}
	return s.push()
}

// relayout rebuilds the line layout after a text or face change and jumps
// back to row 0. Any in-flight animation is dropped since the row space
// changed under it.
func (s *ScrollBox) relayout() error {
	s.anim = nil
	s.layout()
	s.resetDirty()
	return s.ScrollToOver(0, 0)
}

// layout wraps the text and positions every line in text space. The frame
// and the line cache are cleared; the caller is responsible for marking the
// visible window dirty and redrawing it.
func (s *ScrollBox) layout() {
	ascent, descent := label.Metrics(s.face)
	s.pitch = int(math.Round(float64(ascent+descent) * s.lineSpacing))
	if s.pitch < 1 {
		s.pitch = 1
	}
	texts := textwrap.WrapToPixels(s.text, s.w-s.xOffset, s.face)
	s.lines = make([]line, len(texts))
	row := s.yOffset
	for i, t := range texts {
		s.lines[i] = line{
			text:   t,
			top:    row,
			anchor: row + ascent,
			bottom: row + ascent + descent,
		}
		row += s.pitch
	}
	s.maxRow = row
	s.cache.Purge()
	s.fill(0, s.h)
	Logger().Debug("scrollbox: layout", "lines", len(s.lines), "maxRow", s.maxRow)
}

// resetDirty marks the whole visible window for redraw.
func (s *ScrollBox) resetDirty() {
	s.dirty = span{lo: s.cur, hi: s.cur + s.h, ok: true}
}

// extendDirty widens the dirty span with the band of rows a scroll by dy
// brings into view.
func (s *ScrollBox) extendDirty(dy int) {
	if dy == 0 {
		return
	}
	var lo, hi int
	if dy > 0 {
		lo, hi = s.cur+s.h, s.cur+s.h+dy
	} else {
		lo, hi = s.cur+dy, s.cur
	}
	if !s.dirty.ok {
		s.dirty = span{lo: lo, hi: hi, ok: true}
		return
	}
	s.dirty.lo = min(s.dirty.lo, lo)
	s.dirty.hi = max(s.dirty.hi, hi)
}

// drawAt scrolls the frame to newRow, clamped to the valid range, and
// repaints the dirty rows that fall inside the visible window. Pixels
// already on the frame are shifted in place rather than redrawn.
func (s *ScrollBox) drawAt(newRow int) {
	newRow = clamp(newRow, 0, s.maxRow)

	if shift := s.cur - newRow; shift != 0 {
		if shift >= s.h || shift <= -s.h {
			s.fill(0, s.h)
		} else if shift > 0 {
			s.shiftRows(shift)
			s.fill(0, shift)
		} else {
			s.shiftRows(shift)
			s.fill(s.h+shift, s.h)
		}
	}
	s.cur = newRow

	if !s.dirty.ok {
		return
	}
	for i := range s.lines {
		ln := &s.lines[i]
		if ln.bottom < s.dirty.lo {
			continue
		}
		if ln.top > s.dirty.hi {
			break
		}
		r := s.renderLine(i)
		if r == nil {
			continue
		}
		maskTop := ln.anchor + r.AnchorOffset
		y0 := max(s.dirty.lo, maskTop, s.cur)
		y1 := min(s.dirty.hi, maskTop+r.Mask.Rect.Dy(), s.cur+s.h)
		if y0 < y1 {
			s.blit(r, maskTop, y0, y1)
		}
	}
}

// renderLine returns the rasterized mask for line i, rendering and caching
// it on first use. Blank lines yield nil.
func (s *ScrollBox) renderLine(i int) *label.Rendered {
	if r, ok := s.cache.Get(i); ok {
		return r
	}
	r := label.Render(s.lines[i].text, s.face)
	s.cache.Add(i, r)
	return r
}

// blit thresholds a line mask into palette indices over text-space rows
// [y0, y1). Both covered and uncovered pixels are overwritten, matching the
// full clear the vacated band received.
func (s *ScrollBox) blit(r *label.Rendered, maskTop, y0, y1 int) {
	w := min(r.Mask.Rect.Dx(), s.w-s.xOffset)
	if w <= 0 {
		return
	}
	for y := y0; y < y1; y++ {
		mrow := r.Mask.Pix[(y-maskTop)*r.Mask.Stride:]
		frow := s.frame.Pix[(y-s.cur)*s.frame.Stride+s.xOffset:]
		for x := 0; x < w; x++ {
			if mrow[x] >= alphaThreshold {
				frow[x] = 1
			} else {
				frow[x] = 0
			}
		}
	}
}

// shiftRows moves the frame content down by delta rows (up when negative).
// The vacated band keeps stale pixels; the caller clears it.
func (s *ScrollBox) shiftRows(delta int) {
	stride := s.frame.Stride
	if delta > 0 {
		copy(s.frame.Pix[delta*stride:], s.frame.Pix[:(s.h-delta)*stride])
	} else if delta < 0 {
		copy(s.frame.Pix[:(s.h+delta)*stride], s.frame.Pix[-delta*stride:])
	}
}

// fill clears frame rows [y0, y1) to the background palette index.
func (s *ScrollBox) fill(y0, y1 int) {
	y0 = clamp(y0, 0, s.h)
	y1 = clamp(y1, 0, s.h)
	if y0 >= y1 {
		return
	}
	px := s.frame.Pix[y0*s.frame.Stride : y1*s.frame.Stride]
	for i := range px {
		px[i] = 0
	}
}

// push sends the frame to the attached display, if any.
func (s *ScrollBox) push() error {
	if s.disp == nil {
		return nil
	}
	return s.disp.Draw(image.Rect(s.x, s.y, s.x+s.w, s.y+s.h), s.frame, image.Point{})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
