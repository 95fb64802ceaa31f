package imagepkg

import (
	"errors"
	"io/fs"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	apperr "github.com/youruser/comunicado/internal/errors"
)

// Fonts holds the two parsed typefaces used by the layout.
// Parsed fonts are read-only and safe to share; faces are not, so Face
// builds a new one per call.
type Fonts struct {
	bold    *truetype.Font
	regular *truetype.Font
}

// LoadFonts reads and parses the bold and regular TrueType files.
// A missing file is RESOURCE_MISSING; the service must not start without it.
func LoadFonts(boldPath, regularPath string) (*Fonts, error) {
	bold, err := readFont("bold", boldPath)
	if err != nil {
		return nil, err
	}
	regular, err := readFont("regular", regularPath)
	if err != nil {
		return nil, err
	}
	return ParseFonts(bold, regular)
}

func readFont(kind, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeResourceMissing, err, "%s font not found: %s", kind, path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeResourceMissing, err, "read %s font %s", kind, path)
	}
	return b, nil
}

// ParseFonts builds Fonts from raw TTF data.
func ParseFonts(bold, regular []byte) (*Fonts, error) {
	b, err := truetype.Parse(bold)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFont, err, "parse bold font")
	}
	r, err := truetype.Parse(regular)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFont, err, "parse regular font")
	}
	return &Fonts{bold: b, regular: r}, nil
}

// Face returns a face of the given weight, sized in pixels.
func (f *Fonts) Face(w Weight, size int) font.Face {
	tt := f.regular
	if w == Bold {
		tt = f.bold
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// FaceFunc binds Face to a weight.
func (f *Fonts) FaceFunc(w Weight) FaceFunc {
	return func(size int) font.Face { return f.Face(w, size) }
}
