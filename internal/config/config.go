package config

import (
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/samuraislice/slicer/internal/engine"
	"github.com/samuraislice/slicer/internal/geom"
	"github.com/samuraislice/slicer/internal/logging"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	// CatalogPath points at a catalog YAML file; empty uses the embedded one.
	CatalogPath string `envconfig:"CATALOG_PATH"`
	TickRate    int    `envconfig:"TICK_RATE" default:"60"`

	Gravity      float64 `envconfig:"GRAVITY" default:"0.1"`
	MaxDraws     int     `envconfig:"MAX_DRAWS" default:"6"`
	SampleStep   float64 `envconfig:"SAMPLE_STEP" default:"0.05"`
	SplitDepth   int     `envconfig:"SPLIT_DEPTH" default:"7"`
	Tolerance    float64 `envconfig:"TOLERANCE" default:"10"`
	SplitImpulse float64 `envconfig:"SPLIT_IMPULSE" default:"1"`

	WorldWidth  float64 `envconfig:"WORLD_WIDTH" default:"1280"`
	WorldHeight float64 `envconfig:"WORLD_HEIGHT" default:"720"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EngineOptions returns the engine tuning carried by the config.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Gravity:      c.Gravity,
		MaxDraws:     c.MaxDraws,
		SampleStep:   c.SampleStep,
		SplitDepth:   c.SplitDepth,
		Tolerance:    c.Tolerance,
		SplitImpulse: c.SplitImpulse,
	}
}

// World is the playfield; shapes that leave it are pruned.
func (c *Config) World() geom.Rect {
	return geom.Rect{Width: c.WorldWidth, Height: c.WorldHeight}
}

// Origins splits ALLOWED_ORIGINS into host patterns for websocket accept
// and CORS.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Level() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}
