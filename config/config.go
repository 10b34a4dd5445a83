package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type StreamConfig struct {
	URL                string `yaml:"url" validate:"required,url"`
	BackoffBaseMS      int    `yaml:"backoffBaseMS" validate:"gte=0"`
	BackoffIncrementMS int    `yaml:"backoffIncrementMS" validate:"gte=0"`
	BackoffCapMS       int    `yaml:"backoffCapMS" validate:"gte=0"`
}

type StaticConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

type RenderConfig struct {
	PixelRatio             float64 `yaml:"pixelRatio" validate:"gte=0"`
	DirectionBucketDegrees int     `yaml:"directionBucketDegrees" validate:"gte=0"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
}

type AppConfig struct {
	Stream  StreamConfig  `yaml:"stream" validate:"required"`
	Static  StaticConfig  `yaml:"static"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads, validates and defaults a config file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Stream.BackoffBaseMS == 0 {
		c.Stream.BackoffBaseMS = 1000
	}
	if c.Stream.BackoffIncrementMS == 0 {
		c.Stream.BackoffIncrementMS = 2000
	}
	if c.Stream.BackoffCapMS == 0 {
		c.Stream.BackoffCapMS = 30000
	}
	if c.Static.TimeoutMS == 0 {
		c.Static.TimeoutMS = 10000
	}
	if c.Render.PixelRatio == 0 {
		c.Render.PixelRatio = 1
	}
	if c.Render.DirectionBucketDegrees == 0 {
		c.Render.DirectionBucketDegrees = 12
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}
