// Package config provides configuration loading and access for the
// lighting core and its demo frontends. Defaults are embedded; a YAML
// file can override any subset.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tilelight/internal/light"
	"tilelight/internal/pathfind"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable the engine exposes.
type Config struct {
	Light     LightConfig     `yaml:"light"`
	Path      PathConfig      `yaml:"path"`
	Map       MapConfig       `yaml:"map"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LightConfig tunes the lighting engine thresholds.
type LightConfig struct {
	AmbientLow         float32 `yaml:"ambient_low"`
	AmbientLit         float32 `yaml:"ambient_lit"`
	MaxSourceLuminance float32 `yaml:"max_source_luminance"`
	MaxRange           int     `yaml:"max_range"`
	MaxViewDistance    int     `yaml:"max_view_distance"`
	AdaptFraction      float32 `yaml:"adapt_fraction"`
	AdaptThresholdMin  float32 `yaml:"adapt_threshold_min"`
	AdaptThresholdMax  float32 `yaml:"adapt_threshold_max"`
}

// PathConfig tunes the default pathfinding policy.
type PathConfig struct {
	MaxDist          int  `yaml:"max_dist"`
	BashForce        int  `yaml:"bash_force"`
	OpenDoors        bool `yaml:"open_doors"`
	OpenVehicleDoors bool `yaml:"open_vehicle_doors"`
}

// MapConfig sizes the demo world.
type MapConfig struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
}

// ServerConfig configures the SSH inspector server.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// TelemetryConfig configures frame-stats output; an empty path disables
// it.
type TelemetryConfig struct {
	Output string `yaml:"output"`
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultsYAML, &c); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return &c, nil
}

// Load returns the defaults overlaid with the YAML file at path; an empty
// path returns the defaults alone.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return c, nil
}

// LightParams converts the light section to engine params.
func (c *Config) LightParams() light.Params {
	return light.Params{
		AmbientLow:         c.Light.AmbientLow,
		AmbientLit:         c.Light.AmbientLit,
		MaxSourceLuminance: c.Light.MaxSourceLuminance,
		MaxRange:           c.Light.MaxRange,
		MaxViewDistance:    c.Light.MaxViewDistance,
		AdaptFraction:      c.Light.AdaptFraction,
		AdaptThresholdMin:  c.Light.AdaptThresholdMin,
		AdaptThresholdMax:  c.Light.AdaptThresholdMax,
	}
}

// PathSettings converts the path section to pathfinder settings.
func (c *Config) PathSettings() pathfind.Settings {
	return pathfind.Settings{
		MaxDist:          c.Path.MaxDist,
		BashForce:        c.Path.BashForce,
		OpenDoors:        c.Path.OpenDoors,
		OpenVehicleDoors: c.Path.OpenVehicleDoors,
	}
}
