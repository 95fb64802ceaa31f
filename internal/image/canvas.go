package imagepkg

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
)

// NewBlankCanvas returns a canvas filled with the fallback background.
func NewBlankCanvas() *image.NRGBA {
	return imaging.New(CanvasWidth, CanvasHeight, Background)
}

// LoadCanvas returns the brand template resampled to the canvas size.
// src is a file path or an http(s) URL. An empty, missing or undecodable
// template is not an error: the plain dark canvas is returned instead and
// the second result reports whether the template was used.
func LoadCanvas(ctx context.Context, src string, client *http.Client, logger *log.Logger) (*image.NRGBA, bool) {
	if src == "" {
		logger.Warn("no template configured, using blank canvas")
		return NewBlankCanvas(), false
	}

	img, err := loadTemplate(ctx, src, client)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("template not found, using blank canvas", "template", src)
		} else {
			logger.Warn("template unreadable, using blank canvas", "template", src, "err", err)
		}
		return NewBlankCanvas(), false
	}

	logger.Info("template loaded", "template", src,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return FitCanvas(img), true
}

func loadTemplate(ctx context.Context, src string, client *http.Client) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return DownloadImage(ctx, client, src)
	}
	if _, err := os.Stat(src); err != nil {
		return nil, err
	}
	return imaging.Open(src)
}

// FitCanvas resamples img to exactly CanvasWidth x CanvasHeight with a
// Lanczos filter and drops any transparency, keeping the colour channels.
func FitCanvas(img image.Image) *image.NRGBA {
	if img.Bounds().Empty() {
		return NewBlankCanvas()
	}
	out := imaging.Resize(img, CanvasWidth, CanvasHeight, imaging.Lanczos)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}
