// Package config loads ganttline's optional TOML configuration file.
//
// Every value has a default, so the file and each of its tables are
// optional. Command-line flags override whatever the file sets.
//
//	[chart]
//	scale = "hour"      # hour | day | month
//	range_start = 8
//	range_end = 20
//	column_width = 120
//	row_height = 36
//	label_width = 180
//	timezone = "Local"  # zone for timestamps without an offset
//
//	[cache]
//	dir = ""            # default: <user cache dir>/ganttline
//	redis_addr = ""     # set to cache server artifacts in Redis
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ganttline/pkg/cache"
	"github.com/matzehuels/ganttline/pkg/errors"
	"github.com/matzehuels/ganttline/pkg/render"
	"github.com/matzehuels/ganttline/pkg/scale"
)

// AppName names the config and cache directories.
const AppName = "ganttline"

// Config is the full configuration file.
type Config struct {
	Chart  Chart  `toml:"chart"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Chart holds layout and rendering defaults.
type Chart struct {
	Scale       string  `toml:"scale"`
	RangeStart  int     `toml:"range_start"`
	RangeEnd    int     `toml:"range_end"`
	ColumnWidth float64 `toml:"column_width"`
	RowHeight   float64 `toml:"row_height"`
	LabelWidth  float64 `toml:"label_width"`
	Timezone    string  `toml:"timezone"`
}

// Cache selects and tunes the artifact cache.
type Cache struct {
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: Chart{
			Scale:       scale.Hour.String(),
			RangeStart:  scale.DefaultHourRange.Start,
			RangeEnd:    scale.DefaultHourRange.End,
			ColumnWidth: render.DefaultColumnWidth,
			RowHeight:   render.DefaultRowHeight,
			LabelWidth:  render.DefaultLabelWidth,
			Timezone:    "UTC",
		},
		Cache: Cache{TTL: cache.TTLArtifact},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 4 << 20,
		},
	}
}

// DefaultPath returns <user config dir>/ganttline/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, err
	}
	return Parse(data)
}

// LoadOptional is [Load], except that a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := c.View(); err != nil {
		return err
	}
	if c.Chart.ColumnWidth <= 0 || c.Chart.RowHeight <= 0 || c.Chart.LabelWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart sizes must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	return nil
}

// View returns the configured chart view. Month windows are clamped and
// reordered into 1..12 before validation.
func (c *Config) View() (scale.View, error) {
	g, err := scale.Parse(c.Chart.Scale)
	if err != nil {
		return scale.View{}, err
	}
	r := scale.Range{Start: c.Chart.RangeStart, End: c.Chart.RangeEnd}
	if g == scale.Month {
		r = scale.MonthRange(r.Start, r.End)
	}
	v := scale.View{Granularity: g, Range: r}
	if err := v.Validate(); err != nil {
		return scale.View{}, err
	}
	return v, nil
}

// Frame returns the configured pixel metrics.
func (c *Config) Frame() render.Frame {
	f := render.DefaultFrame()
	f.ColumnWidth = c.Chart.ColumnWidth
	f.RowHeight = c.Chart.RowHeight
	f.LabelWidth = c.Chart.LabelWidth
	return f.WithDefaults()
}

// Location resolves the chart timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Chart.Timezone {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Chart.Timezone)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "chart.timezone")
	}
	return loc, nil
}

// CacheDir returns the file cache directory, defaulting to
// <user cache dir>/ganttline.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
