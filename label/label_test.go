package label

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

// inkCount returns the number of mask pixels with nonzero coverage.
func inkCount(r *Rendered) int {
	n := 0
	for _, a := range r.Mask.Pix {
		if a != 0 {
			n++
		}
	}
	return n
}

func TestRenderGeometry(t *testing.T) {
	// Face7x13 reports a fixed 6x13 glyph box with ascent 11 and a 7 pixel
	// advance, so every measurement below is exact.
	face := basicfont.Face7x13

	tests := []struct {
		name        string
		text        string
		wantW       int
		wantH       int
		wantAnchor  int
		wantAdvance int
	}{
		{"single glyph", "a", 6, 13, -11, 7},
		{"two glyphs", "ab", 13, 13, -11, 14},
		{"with space", "a b", 20, 13, -11, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Render(tt.text, face)
			if r == nil {
				t.Fatalf("Render(%q) = nil", tt.text)
			}
			b := r.Mask.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("mask = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if r.AnchorOffset != tt.wantAnchor {
				t.Errorf("AnchorOffset = %d, want %d", r.AnchorOffset, tt.wantAnchor)
			}
			if r.Advance != tt.wantAdvance {
				t.Errorf("Advance = %d, want %d", r.Advance, tt.wantAdvance)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	if r := Render("", basicfont.Face7x13); r != nil {
		t.Errorf("Render(\"\") = %v, want nil", r)
	}
}

func TestRenderInk(t *testing.T) {
	face := basicfont.Face7x13

	one := Render("a", face)
	two := Render("aa", face)
	if one == nil || two == nil {
		t.Fatal("Render returned nil for non-empty text")
	}

	if inkCount(one) == 0 {
		t.Error("Render(\"a\") produced an empty mask")
	}

	// The glyph box (6 wide) is narrower than the advance (7), so the two
	// copies of the glyph never overlap and their ink adds up exactly.
	if got, want := inkCount(two), 2*inkCount(one); got != want {
		t.Errorf("ink of \"aa\" = %d, want %d", got, want)
	}
}

func TestRenderSpacesHaveNoInk(t *testing.T) {
	// basicfont reports full cell bounds for the space glyph, so the mask
	// exists but must stay blank.
	r := Render("   ", basicfont.Face7x13)
	if r == nil {
		t.Skip("face reports empty bounds for spaces")
	}
	if n := inkCount(r); n != 0 {
		t.Errorf("spaces produced %d ink pixels", n)
	}
}

func TestMetrics(t *testing.T) {
	ascent, descent := Metrics(basicfont.Face7x13)
	if ascent != 11 || descent != 2 {
		t.Errorf("Metrics = (%d, %d), want (11, 2)", ascent, descent)
	}
}
