package scrollbox

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// LoadFace reads an OpenType or TrueType font file and returns a face sized
// at the given point size, rendered at 72 DPI so points equal pixels. The
// returned face is not safe for concurrent use, same as any opentype face.
func LoadFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scrollbox: reading font: %w", err)
	}
	ft, err := opentype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("scrollbox: parsing %s: %w", path, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("scrollbox: sizing %s: %w", path, err)
	}
	return face, nil
}
