// Package config loads ridgeline's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexcabrera/ridgeline/internal/logging"
	"github.com/alexcabrera/ridgeline/internal/navbar"
	"github.com/alexcabrera/ridgeline/internal/paths"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the configuration for ridgeline.
type Config struct {
	// ContentDir overrides the embedded site content. Empty uses
	// paths.ContentDir, then the embedded content.
	ContentDir string `yaml:"content_dir"`
	StartRoute string `yaml:"start_route"`

	Nav  NavConfig  `yaml:"nav"`
	Hero HeroConfig `yaml:"hero"`
	Log  LogConfig  `yaml:"log"`
}

// NavConfig tunes the navigation bar.
type NavConfig struct {
	SettleDelay     time.Duration `yaml:"settle_delay"`
	SampleOffset    int           `yaml:"sample_offset"`
	AncestorDepth   int           `yaml:"ancestor_depth"`
	Threshold       float64       `yaml:"threshold"`
	Hysteresis      float64       `yaml:"hysteresis"`
	ThemeTransition time.Duration `yaml:"theme_transition"`
	BarTransition   time.Duration `yaml:"bar_transition"`
	BarHeight       int           `yaml:"bar_height"`
}

// HeroConfig tunes the home page banner.
type HeroConfig struct {
	FallbackDelay time.Duration `yaml:"fallback_delay"`
}

// LogConfig selects log level, format and destination. An empty File
// means paths.LogFile for the interactive shell and stderr otherwise.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config populated with default values.
func Default() Config {
	opts := navbar.DefaultOptions()
	return Config{
		ContentDir: paths.ContentDir(),
		StartRoute: "/",
		Nav: NavConfig{
			SettleDelay:     300 * time.Millisecond,
			SampleOffset:    opts.SampleOffset,
			AncestorDepth:   opts.AncestorDepth,
			Threshold:       opts.Threshold,
			Hysteresis:      opts.Hysteresis,
			ThemeTransition: opts.ThemeTransition,
			BarTransition:   200 * time.Millisecond,
			BarHeight:       3,
		},
		Hero: HeroConfig{
			FallbackDelay: 3 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from the given path, falling back to defaults
// when missing. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.StartRoute) == "" {
		cfg.StartRoute = "/"
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// ApplyEnv overrides fields from RIDGELINE_CONTENT_DIR and
// RIDGELINE_START_ROUTE.
func (c *Config) ApplyEnv() {
	if dir := strings.TrimSpace(os.Getenv("RIDGELINE_CONTENT_DIR")); dir != "" {
		c.ContentDir = dir
	}
	if route := strings.TrimSpace(os.Getenv("RIDGELINE_START_ROUTE")); route != "" {
		c.StartRoute = route
	}
}

// Validate rejects values the shell cannot run with.
func (c Config) Validate() error {
	var problems []string
	n := c.Nav
	if n.SettleDelay < 0 {
		problems = append(problems, "nav.settle_delay must not be negative")
	}
	if n.SampleOffset < 0 {
		problems = append(problems, "nav.sample_offset must not be negative")
	}
	if n.AncestorDepth < 1 {
		problems = append(problems, "nav.ancestor_depth must be at least 1")
	}
	if n.Threshold < 0 || n.Threshold > 255 {
		problems = append(problems, "nav.threshold must be within 0..255")
	}
	if n.Hysteresis < 0 || n.Hysteresis > 127 {
		problems = append(problems, "nav.hysteresis must be within 0..127")
	}
	if n.ThemeTransition < 0 || n.BarTransition < 0 {
		problems = append(problems, "nav transitions must not be negative")
	}
	if n.BarHeight < 1 {
		problems = append(problems, "nav.bar_height must be at least 1")
	}
	if c.Hero.FallbackDelay < 0 {
		problems = append(problems, "hero.fallback_delay must not be negative")
	}
	if !strings.HasPrefix(c.StartRoute, "/") {
		problems = append(problems, fmt.Sprintf("start_route %q must start with /", c.StartRoute))
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// NavOptions converts the nav section for the bar controller.
func (c Config) NavOptions() navbar.Options {
	return navbar.Options{
		SampleOffset:    c.Nav.SampleOffset,
		AncestorDepth:   c.Nav.AncestorDepth,
		Threshold:       c.Nav.Threshold,
		Hysteresis:      c.Nav.Hysteresis,
		ThemeTransition: c.Nav.ThemeTransition,
	}
}

// Logging converts the log section, with RIDGELINE_LOG_* taking
// precedence.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.Log.Level, lc.Level)
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	return logging.ApplyEnv(lc)
}
