package textwrap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
)

// Face7x13 advances every glyph by 7 pixels with no kerning, so expected
// widths are exact multiples: 7 characters fit in 49 pixels.

func TestWrapToPixels(t *testing.T) {
	face := basicfont.Face7x13

	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{
			name:     "empty text",
			text:     "",
			maxWidth: 49,
			want:     []string{""},
		},
		{
			name:     "fits on one line",
			text:     "hello",
			maxWidth: 49,
			want:     []string{"hello"},
		},
		{
			name:     "exact fit is not broken",
			text:     "abcdefg",
			maxWidth: 49,
			want:     []string{"abcdefg"},
		},
		{
			name:     "breaks at space",
			text:     "hello world",
			maxWidth: 49,
			want:     []string{"hello", "world"},
		},
		{
			name:     "greedy fill",
			text:     "a bb ccc dddd",
			maxWidth: 49,
			want:     []string{"a bb", "ccc", "dddd"},
		},
		{
			name:     "long word breaks at rune boundary",
			text:     "abcdefghij",
			maxWidth: 49,
			want:     []string{"abcdefg", "hij"},
		},
		{
			name:     "long word after short word",
			text:     "ab cdefghijkl",
			maxWidth: 49,
			want:     []string{"ab", "cdefghi", "jkl"},
		},
		{
			name:     "hard break",
			text:     "ab\ncd",
			maxWidth: 490,
			want:     []string{"ab", "cd"},
		},
		{
			name:     "blank paragraph survives",
			text:     "ab\n\ncd",
			maxWidth: 490,
			want:     []string{"ab", "", "cd"},
		},
		{
			name:     "windows line endings",
			text:     "ab\r\ncd\rEF",
			maxWidth: 490,
			want:     []string{"ab", "cd", "EF"},
		},
		{
			name:     "leading spaces preserved",
			text:     "  in",
			maxWidth: 49,
			want:     []string{"  in"},
		},
		{
			name:     "zero width disables wrapping",
			text:     "hello world\nfoo",
			maxWidth: 0,
			want:     []string{"hello world", "foo"},
		},
		{
			name:     "width below one glyph still advances",
			text:     "abc",
			maxWidth: 3,
			want:     []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapToPixels(tt.text, tt.maxWidth, face)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WrapToPixels(%q, %d) mismatch (-want +got):\n%s",
					tt.text, tt.maxWidth, diff)
			}
		})
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	face := basicfont.Face7x13
	text := "The quick brown fox jumps over the lazy dog, incomprehensibilities included."

	for _, maxWidth := range []int{7, 21, 49, 100, 150} {
		lines := WrapToPixels(text, maxWidth, face)
		for _, line := range lines {
			if w := Measure(line, face); w > maxWidth {
				t.Errorf("maxWidth %d: line %q measures %d", maxWidth, line, w)
			}
		}
	}
}

func TestMeasure(t *testing.T) {
	face := basicfont.Face7x13

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 7},
		{"hello", 35},
		{"hello world", 77},
	}

	for _, tt := range tests {
		if got := Measure(tt.text, face); got != tt.want {
			t.Errorf("Measure(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
