package sim

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"zero width", 0, 2, true},
		{"zero height", 2, 0, true},
		{"negative width", -4, 2, true},
		{"odd height", 4, 3, true},
		{"minimal", 1, 2, false},
		{"panel sized", 128, 64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := d.Bounds(); got != image.Rect(0, 0, tt.w, tt.h) {
				t.Errorf("Bounds() = %v, want (0,0)-(%d,%d)", got, tt.w, tt.h)
			}
		})
	}
}

func TestString(t *testing.T) {
	d, err := New(128, 64)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.String(); got != "sim.Display{128x64}" {
		t.Errorf("String() = %q", got)
	}
}

func TestDrawClips(t *testing.T) {
	d, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	red := image.NewUniform(color.NRGBA{R: 0xff, A: 0xff})

	// Partially outside: the overlap is drawn, the rest ignored.
	if err := d.Draw(image.Rect(2, 2, 6, 6), red, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := d.fb.NRGBAAt(3, 3); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("pixel (3,3) = %v, want red", got)
	}
	if got := d.fb.NRGBAAt(1, 1); got != (color.NRGBA{}) {
		t.Errorf("pixel (1,1) = %v, want untouched", got)
	}

	// Fully outside is a no-op.
	if err := d.Draw(image.Rect(10, 10, 20, 20), red, image.Point{}); err != nil {
		t.Fatal(err)
	}
}

func TestDrawClipAdjustsSourcePoint(t *testing.T) {
	d, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), A: 0xff})
		}
	}
	// The rectangle sticks out top-left by one pixel, so the source point
	// must advance by the clipped amount.
	if err := d.Draw(image.Rect(-1, -1, 3, 3), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got, want := d.fb.NRGBAAt(0, 0), (color.NRGBA{R: 10, G: 10, A: 0xff}); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
}

func TestDrawAfterHalt(t *testing.T) {
	d, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	red := image.NewUniform(color.NRGBA{R: 0xff, A: 0xff})
	if err := d.Draw(d.Bounds(), red, image.Point{}); err == nil {
		t.Error("Draw() after Halt expected error, got nil")
	}
}

func TestHaltBlanks(t *testing.T) {
	d, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	red := image.NewUniform(color.NRGBA{R: 0xff, A: 0xff})
	if err := d.Draw(d.Bounds(), red, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	for i, p := range d.fb.Pix {
		if p != 0 {
			t.Fatalf("frame buffer byte %d = %d after Halt, want 0", i, p)
		}
	}
}

func TestRenderShape(t *testing.T) {
	d, err := New(5, 6)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(d.Render(), "\n")
	// Two pixel rows per line plus the trailing newline split.
	if got := len(lines); got != 4 {
		t.Fatalf("Render() produced %d segments, want 4", got)
	}
	if lines[3] != "" {
		t.Errorf("Render() does not end with a newline")
	}
	for i, line := range lines[:3] {
		if got := strings.Count(line, "▀"); got != 5 {
			t.Errorf("line %d has %d cells, want 5", i, got)
		}
		if !strings.HasSuffix(line, "\x1b[0m") {
			t.Errorf("line %d does not reset the escape state", i)
		}
	}
}

func TestRenderColors(t *testing.T) {
	d, err := New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	src.SetNRGBA(0, 1, color.NRGBA{B: 0xff, A: 0xff})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	out := d.Render()
	if !strings.Contains(out, "\x1b[38;2;255;0;0m") {
		t.Error("top pixel color missing from output")
	}
	if !strings.Contains(out, "\x1b[48;2;0;0;255m") {
		t.Error("bottom pixel color missing from output")
	}
}

func TestRenderDeduplicatesEscapes(t *testing.T) {
	d, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}
	red := image.NewUniform(color.NRGBA{R: 0xff, A: 0xff})
	if err := d.Draw(d.Bounds(), red, image.Point{}); err != nil {
		t.Fatal(err)
	}
	out := d.Render()
	// A uniform line needs exactly one foreground and one background escape.
	if got := strings.Count(out, "\x1b[38;2;"); got != 1 {
		t.Errorf("output has %d foreground escapes, want 1", got)
	}
	if got := strings.Count(out, "\x1b[48;2;"); got != 1 {
		t.Errorf("output has %d background escapes, want 1", got)
	}
}

func TestRenderTransparency(t *testing.T) {
	d, err := New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Half transparent white folds to mid gray against the black terminal.
	src := image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80})
	if err := d.Draw(d.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d.Render(), "\x1b[38;2;128;128;128m") {
		t.Error("premultiplied color missing from output")
	}
}
