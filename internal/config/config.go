package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Config holds the image server settings.
type Config struct {
	ListenAddr     string `env:"IMAGES_LISTEN_ADDR" envDefault:"0.0.0.0:5000"`
	StoragePath    string `env:"IMAGES_STORAGE_PATH" envDefault:"images"`
	MaxUploadBytes int64  `env:"IMAGES_MAX_UPLOAD_BYTES" envDefault:"33554432"`
	Debug          bool   `env:"IMAGES_DEBUG" envDefault:"false"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Gops           bool   `env:"IMAGES_GOPS" envDefault:"false"`

	ReadHeaderTimeout time.Duration `env:"IMAGES_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ReadTimeout       time.Duration `env:"IMAGES_READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `env:"IMAGES_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout       time.Duration `env:"IMAGES_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `env:"IMAGES_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Inference holds the describe tool settings.
type Inference struct {
	// Addr is probed over TCP before any request is made.
	Addr         string        `env:"INFERENCE_ADDR" envDefault:"localhost:11434"`
	BaseURL      string        `env:"INFERENCE_BASE_URL" envDefault:"http://localhost:11434/v1/"`
	APIKey       string        `env:"INFERENCE_API_KEY" envDefault:"ollama"`
	Model        string        `env:"INFERENCE_MODEL" envDefault:"llama3.2-vision:latest"`
	ImagePath    string        `env:"INFERENCE_IMAGE_PATH" envDefault:"images/test.jpg"`
	Prompt       string        `env:"INFERENCE_PROMPT" envDefault:"What is in this image?"`
	Timeout      time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"5m"`
	DialTimeout  time.Duration `env:"INFERENCE_DIAL_TIMEOUT" envDefault:"3s"`
	MaxDimension int           `env:"INFERENCE_MAX_DIMENSION" envDefault:"0"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and parses the server settings from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("IMAGES_MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return &cfg, nil
}

// LoadInference reads .env (if present) and parses the describe tool settings.
func LoadInference() (*Inference, error) {
	_ = godotenv.Load()

	var cfg Inference
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxDimension < 0 {
		return nil, fmt.Errorf("INFERENCE_MAX_DIMENSION must not be negative, got %d", cfg.MaxDimension)
	}
	return &cfg, nil
}

// Level maps a level name to a slog.Level. Unknown names fall back to info.
// Debug forces the debug level.
func Level(name string, debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
