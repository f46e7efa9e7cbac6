// Package scrollbox renders word-wrapped text into a rectangular region and
// scrolls it with eased animation.
//
// A ScrollBox composes text into an in-memory frame and implements
// image.Image, so it can be placed on any canvas. When given a
// display.Drawer from periph.io it also pushes every redraw to the display
// by itself, which is the usual mode on small OLED and LCD panels.
//
// # Scrolling Model
//
// The wrapped text lives in "text space", a tall virtual strip of pixel
// rows. The box is a window onto that strip: the current scroll row is the
// text-space row aligned with the top edge of the box.
//
// - Row 0 shows the text from the beginning
// - Row MaxRow has the text scrolled fully out of the box
// - Every scroll destination is clamped to [0, MaxRow]
//
// Positive scroll amounts move the text up (reading forward), negative ones
// move it back. Scrolls animate over a configurable duration shaped by an
// easing function; a zero duration jumps.
//
// # Basic Usage
//
// Example of scrolling a message on a 128×64 SSD1306 OLED:
//
//	package main
//
//	import (
//		"log"
//		"time"
//
//		"github.com/flavioheleno/scrollbox"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/devices/v3/ssd1306"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//
//		// Open the I²C bus and the display
//		bus, err := i2creg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Create a box covering the whole panel
//		box, err := scrollbox.New(&scrollbox.Opts{
//			W:       128,
//			H:       64,
//			Text:    "The quick brown fox jumps over the lazy dog.",
//			Display: dev,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Scroll one line at a time until the text is gone
//		for box.CurrentRow() < box.MaxRow() {
//			if err := box.Scroll(13); err != nil {
//				log.Fatal(err)
//			}
//			time.Sleep(time.Second)
//		}
//	}
//
// # Driving Animation Yourself
//
// Scroll, ScrollTo and ScrollOver block with an internal ticker. Event
// loops that already have a frame clock use the non-blocking pair instead:
//
//	box.StartScroll(64, 500*time.Millisecond)
//	// on every frame tick:
//	done, err := box.Step(time.Now())
//
// Step redraws for the given time and pushes to the attached display. The
// first Step after StartScroll pins the animation start time, so the caller
// fully controls the clock.
//
// # Fonts
//
// The default face is basicfont.Face7x13 from golang.org/x/image. Any
// font.Face works; LoadFace reads an OpenType or TrueType file:
//
//	face, err := scrollbox.LoadFace("/usr/share/fonts/TTF/DejaVuSans.ttf", 14)
//	box, err := scrollbox.New(&scrollbox.Opts{Face: face, Text: "…"})
//
// Lines are rasterized lazily and kept in a small LRU cache, so long texts
// only pay for the lines that actually reach the screen.
//
// # Colors and Transparency
//
// The frame is an indexed image with a two entry palette: background and
// text. SetColor and SetBackground mutate the palette only, recoloring
// everything already rendered without touching a single pixel.
// SetBackgroundTransparent swaps the background entry for a fully
// transparent color, letting the host compositor show through when the box
// is drawn over other content.
//
// # Horizontal Scrolling
//
// Marquee is the horizontal counterpart: a single line that slides sideways
// and wraps around with a configurable gap, like a news ticker. Text that
// fits the box is simply drawn and never moves.
//
//	m, err := scrollbox.NewMarquee(&scrollbox.MarqueeOpts{
//		W:       128,
//		Text:    "breaking: nothing happened",
//		Display: dev,
//	})
//	// on every frame tick:
//	moved, err := m.Step(time.Now())
//
// # Performance
//
// Redraws are incremental. A scroll shifts the already composed pixels in
// place and re-rasterizes only the band of rows entering the box, tracked
// as a dirty span in text space. Combined with the line cache this keeps a
// full-height scroll on a 256×64 frame well under a millisecond on a
// Raspberry Pi Zero, leaving the display bus as the only bottleneck.
//
// # Compatibility with periph.io
//
// The Display field accepts any display.Drawer:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// That covers the periph.io OLED and e-paper drivers as well as the sim
// package in this module, which draws the frame into a terminal for
// development without hardware.
package scrollbox
