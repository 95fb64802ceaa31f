package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the announcement service.
type Config struct {
	Server Server `yaml:"server"`
	Assets Assets `yaml:"assets"`
	// OutputDir receives rendered announcements.
	OutputDir string `yaml:"output_dir"`
	// PublicURL is the externally visible base URL used in QR codes.
	// Empty means derive it from the incoming request.
	PublicURL string `yaml:"public_url"`
	LogLevel  string `yaml:"log_level"`
}

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type Assets struct {
	// Template is a file path or http(s) URL to the brand background.
	Template    string `yaml:"template"`
	FontBold    string `yaml:"font_bold"`
	FontRegular string `yaml:"font_regular"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			ListenAddress: ":8080",
			ReadTimeout:   5 * time.Second,
			WriteTimeout:  15 * time.Second,
			IdleTimeout:   60 * time.Second,
		},
		Assets: Assets{
			Template:    "templates/base_template.png",
			FontBold:    "templates/fonts/DejaVuSans-Bold.ttf",
			FontRegular: "templates/fonts/DejaVuSans.ttf",
		},
		OutputDir: "outputs",
		LogLevel:  "info",
	}
}

// Load builds a Config from the defaults, an optional YAML file at path,
// then environment variables (a .env file in the working directory is
// honoured). A missing file is only an error when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Server.ListenAddress = getEnv("COMUNICADO_LISTEN_ADDR", c.Server.ListenAddress)
	c.Assets.Template = getEnv("COMUNICADO_TEMPLATE", c.Assets.Template)
	c.Assets.FontBold = getEnv("COMUNICADO_FONT_BOLD", c.Assets.FontBold)
	c.Assets.FontRegular = getEnv("COMUNICADO_FONT_REGULAR", c.Assets.FontRegular)
	c.OutputDir = getEnv("COMUNICADO_OUTPUT_DIR", c.OutputDir)
	c.PublicURL = getEnv("COMUNICADO_PUBLIC_URL", c.PublicURL)
	c.LogLevel = getEnv("COMUNICADO_LOG_LEVEL", c.LogLevel)

	// PORT is what most hosting platforms set.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("COMUNICADO_LISTEN_ADDR") == "" {
		c.Server.ListenAddress = ":" + port
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"COMUNICADO_READ_TIMEOUT", &c.Server.ReadTimeout},
		{"COMUNICADO_WRITE_TIMEOUT", &c.Server.WriteTimeout},
		{"COMUNICADO_IDLE_TIMEOUT", &c.Server.IdleTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	if c.Assets.FontBold == "" || c.Assets.FontRegular == "" {
		return errors.New("config: both font paths are required")
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
