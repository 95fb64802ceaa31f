package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/youruser/comunicado/internal/announcement"
	apperr "github.com/youruser/comunicado/internal/errors"
	imagepkg "github.com/youruser/comunicado/internal/image"
	"github.com/youruser/comunicado/internal/metrics"
	"github.com/youruser/comunicado/internal/util"
	"github.com/youruser/comunicado/internal/validate"
)

const serviceName = "comunicado-api"

// Renderer turns a validated request into a file on disk.
type Renderer interface {
	Render(ctx context.Context, req announcement.Request) (string, error)
}

// Options configures a Server.
type Options struct {
	Renderer  Renderer
	Validator validate.Validator // nil means validate.Schema
	Metrics   *metrics.Metrics   // optional
	Logger    *log.Logger
	OutputDir string
	PublicURL string
	Version   string
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	renderer  Renderer
	validator validate.Validator
	metrics   *metrics.Metrics
	logger    *log.Logger
	outputDir string
	publicURL string
	version   string
}

func NewServer(opts Options) *Server {
	s := &Server{
		renderer:  opts.Renderer,
		validator: opts.Validator,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		outputDir: opts.OutputDir,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		version:   opts.Version,
	}
	if s.validator == nil {
		s.validator = validate.Schema{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.version == "" {
		s.version = "dev"
	}
	return s
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":  "Comunicado Image Generation API",
		"version":  s.version,
		"health":   "/health",
		"metrics":  "/metrics",
		"endpoint": "POST /api/announcements",
	})
}

type createResponse struct {
	Success          bool    `json:"success"`
	FilePath         string  `json:"file_path"`
	FileName         string  `json:"file_name"`
	URL              string  `json:"url"`
	GenerationTimeMS float64 `json:"generation_time_ms"`
}

// createAnnouncement validates the JSON body and renders the image.
func (s *Server) createAnnouncement(c *gin.Context) {
	start := time.Now()

	var req announcement.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}
	logger := s.logger.With("request_id", c.GetString(requestIDKey), "subject", req.SubjectLabel)

	if err := s.validator.Validate(req); err != nil {
		logger.Warn("validation failed", "err", apperr.JoinMessages(err))
		s.observe(metrics.OutcomeInvalid, start)
		s.fail(c, err)
		return
	}

	path, err := s.renderer.Render(c.Request.Context(), req)
	if err != nil {
		switch apperr.GetCode(err) {
		case apperr.ErrCodeInvalidFormat:
			logger.Warn("render rejected", "err", err)
			s.observe(metrics.OutcomeInvalid, start)
		case apperr.ErrCodeTextOverflow:
			logger.Error("text does not fit", "err", err)
			s.observe(metrics.OutcomeOverflow, start)
		default:
			logger.Error("render failed", "err", err)
			s.observe(metrics.OutcomeError, start)
		}
		s.fail(c, err)
		return
	}

	elapsed := time.Since(start)
	s.observe(metrics.OutcomeOK, start)
	logger.Info("announcement generated", "path", path, "elapsed", elapsed.Round(time.Millisecond))

	name := filepath.Base(path)
	c.JSON(http.StatusOK, createResponse{
		Success:          true,
		FilePath:         path,
		FileName:         name,
		URL:              s.downloadURL(c, name),
		GenerationTimeMS: math.Round(float64(elapsed.Microseconds())/10) / 100,
	})
}

// getAnnouncement serves a previously rendered file.
func (s *Server) getAnnouncement(c *gin.Context) {
	path, err := s.resolve(c.Param("file"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Type", "image/jpeg")
	c.File(path)
}

// announcementQR returns a PNG QR code pointing at the file's download URL.
func (s *Server) announcementQR(c *gin.Context) {
	name := c.Param("file")
	if _, err := s.resolve(name); err != nil {
		s.fail(c, err)
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(s.downloadURL(c, name), size)
	if err != nil {
		s.fail(c, apperr.Wrap(apperr.ErrCodeInternal, err, "generate qr"))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// resolve maps a file name to a path in the output dir.
func (s *Server) resolve(name string) (string, error) {
	if !util.IsBaseName(name) || !strings.HasSuffix(name, announcement.FileExt) {
		return "", apperr.New(apperr.ErrCodeInvalidPath, "invalid announcement name %q", name)
	}
	path := filepath.Join(s.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.New(apperr.ErrCodeNotFound, "announcement %s not found", name)
		}
		return "", apperr.Wrap(apperr.ErrCodeInternal, err, "stat %s", name)
	}
	return path, nil
}

func (s *Server) downloadURL(c *gin.Context, name string) string {
	base := s.publicURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + "/api/announcements/" + name
}

func (s *Server) observe(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRender(outcome, time.Since(start))
	}
}

// fail writes err as a JSON error body with the status its code maps to.
func (s *Server) fail(c *gin.Context, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	body := gin.H{
		"success": false,
		"code":    code,
		"error":   apperr.JoinMessages(err),
	}
	if fields := apperr.FieldErrors(err); len(fields) > 0 {
		details := make([]gin.H, len(fields))
		for i, f := range fields {
			details[i] = gin.H{"field": f.Field, "message": f.Message}
		}
		body["fields"] = details
	}
	c.AbortWithStatusJSON(statusFor(code), body)
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidFormat, apperr.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperr.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
