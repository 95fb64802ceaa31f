// Package imagepkg renders announcement images.
//
// A Compositor owns the fixed 1542x1600 layout: it draws every line of
// Layout centered on the brand template, shrinking request-supplied text in
// 2px steps until it fits the canvas width minus Margin, and writes the
// result as a quality-90 JPEG named after the date and the subject.
//
// The Compositor keeps only read-only state (parsed fonts and the resampled
// template), so one instance may serve concurrent renders. Renders of the
// same date and subject write the same path; the last writer wins.
package imagepkg

import (
	"context"
	"errors"
	"image"
	"net/http"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/youruser/comunicado/internal/announcement"
	apperr "github.com/youruser/comunicado/internal/errors"
	"github.com/youruser/comunicado/internal/util"
)

// Options configures a Compositor.
type Options struct {
	Fonts     *Fonts
	Template  string // file path or http(s) URL; empty means no template
	OutputDir string
	Client    *http.Client // used for URL templates; nil means util.DefaultClient
	Logger    *log.Logger
}

// Compositor renders announcements onto a fixed canvas.
type Compositor struct {
	fonts     *Fonts
	base      *image.NRGBA
	templated bool
	outputDir string
	logger    *log.Logger
}

// Placement records where and how one line was drawn.
type Placement struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	Size  int    `json:"size"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Width int    `json:"width"`
}

// NewCompositor prepares the base canvas once. Fonts are required.
func NewCompositor(ctx context.Context, opts Options) (*Compositor, error) {
	if opts.Fonts == nil {
		return nil, apperr.New(apperr.ErrCodeResourceMissing, "fonts are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "outputs"
	}

	base, templated := LoadCanvas(ctx, opts.Template, opts.Client, logger)
	return &Compositor{
		fonts:     opts.Fonts,
		base:      base,
		templated: templated,
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// OutputDir is the directory rendered files are written to.
func (c *Compositor) OutputDir() string { return c.outputDir }

// Templated reports whether the brand template was loaded.
func (c *Compositor) Templated() bool { return c.templated }

// Compose draws every Layout line for req onto a fresh copy of the base
// canvas. The placements are returned in drawing order.
func (c *Compositor) Compose(req announcement.Request) (*image.NRGBA, []Placement, error) {
	canvas := imaging.Clone(c.base)
	maxWidth := CanvasWidth - Margin
	placements := make([]Placement, 0, len(Layout))

	for _, spec := range Layout {
		text := spec.Text(req)
		newFace := c.fonts.FaceFunc(spec.Weight)

		var fit Fit
		if spec.Fitted() {
			var err error
			fit, err = FitText(newFace, text, spec.Size, spec.MinSize, maxWidth)
			if err != nil {
				var overflow *apperr.TextOverflowError
				if errors.As(err, &overflow) {
					overflow.Field = spec.Name
				}
				return nil, nil, err
			}
		} else {
			face := newFace(spec.Size)
			fit = Fit{Size: spec.Size, Width: MeasureWidth(face, text), Face: face}
		}

		x := CenterX(CanvasWidth, fit.Width)
		DrawText(canvas, fit.Face, text, x, spec.Y, image.NewUniform(spec.Color))

		if fit.Size != spec.Size {
			c.logger.Debug("font shrunk to fit", "field", spec.Name, "from", spec.Size, "to", fit.Size)
		}
		placements = append(placements, Placement{
			Field: spec.Name, Text: text, Size: fit.Size, X: x, Y: spec.Y, Width: fit.Width,
		})
	}
	return canvas, placements, nil
}

// Render composes req and writes it to the output directory, returning the
// file path. The write is not atomic.
func (c *Compositor) Render(ctx context.Context, req announcement.Request) (string, error) {
	filename, err := announcement.BuildFilename(req)
	if err != nil {
		return "", err
	}
	c.logger.Info("rendering announcement", "subject", req.SubjectLabel, "file", filename)

	canvas, _, err := c.Compose(req)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := util.EnsureDir(c.outputDir); err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInternal, err, "create output dir %s", c.outputDir)
	}
	path := filepath.Join(c.outputDir, filename)
	if err := imaging.Save(canvas, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return "", apperr.Wrap(apperr.ErrCodeInternal, err, "save %s", path)
	}

	c.logger.Info("announcement written", "path", path)
	return path, nil
}
