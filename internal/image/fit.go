package imagepkg

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	apperr "github.com/youruser/comunicado/internal/errors"
)

// FaceFunc returns a face at the given pixel size.
type FaceFunc func(size int) font.Face

// Fit is the outcome of a font-fit search.
type Fit struct {
	Size  int
	Width int
	Face  font.Face
}

// MeasureWidth returns the advance width of text in whole pixels, rounded up.
func MeasureWidth(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// FitText walks down from initial in FontStep decrements and returns the
// first size at which text is no wider than maxWidth. It never goes below
// minSize; if nothing fits it returns a *apperr.TextOverflowError.
func FitText(newFace FaceFunc, text string, initial, minSize, maxWidth int) (Fit, error) {
	for size := initial; size >= minSize; size -= FontStep {
		face := newFace(size)
		if w := MeasureWidth(face, text); w <= maxWidth {
			return Fit{Size: size, Width: w, Face: face}, nil
		}
	}
	return Fit{}, &apperr.TextOverflowError{Text: text, MinSize: minSize, MaxWidth: maxWidth}
}

// CenterX returns the left edge that centers a line of width w.
func CenterX(canvasWidth, w int) int {
	return (canvasWidth - w) / 2
}

// DrawText draws text with its box top-left corner at (x, y).
func DrawText(dst *image.NRGBA, face font.Face, text string, x, y int, src image.Image) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
