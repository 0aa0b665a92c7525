// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Water     WaterConfig     `yaml:"water"`
	Player    PlayerConfig    `yaml:"player"`
	Particles ParticlesConfig `yaml:"particles"`
	Menu      MenuConfig      `yaml:"menu"`
	Rocks     RocksConfig     `yaml:"rocks"`
	Rapids    RapidsConfig    `yaml:"rapids"`
	Assets    AssetsConfig    `yaml:"assets"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Autopilot AutopilotConfig `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	Scale     int `yaml:"scale"` // Window pixels per viewport pixel
}

// PhysicsConfig holds simulation timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per tick
}

// WaterConfig holds river current parameters.
type WaterConfig struct {
	FlowAcceleration float64 `yaml:"flow_acceleration"` // Constant upstream push, px/s^2
	MaxAcceleration  float64 `yaml:"max_acceleration"`  // Field magnitude at Speed=255, px/s^2
}

// PlayerConfig holds leaf parameters.
type PlayerConfig struct {
	MaxVelocity            float64 `yaml:"max_velocity"`             // px/s, shared with particles
	SteerFactor            float64 `yaml:"steer_factor"`             // Steering = water.max_acceleration * this
	RapidsVelocityBase     float64 `yaml:"rapids_velocity_base"`     // Launch speed of the first rapids
	RapidsVelocityIncrease float64 `yaml:"rapids_velocity_increase"` // Added on every rapids section
	Radius                 float64 `yaml:"radius"`                   // Collision and trail radius
	PaintColor             string  `yaml:"paint_color"`              // Trail colour, hex
}

// ParticlesConfig holds ambient water particle parameters.
type ParticlesConfig struct {
	PoolSize     int        `yaml:"pool_size"`
	Size         float64    `yaml:"size"`           // Painted mark radius
	LifespanMS   int        `yaml:"lifespan_ms"`    // Particle lifetime
	FrequencyMS  int        `yaml:"frequency_ms"`   // Emit interval
	Quantity     int        `yaml:"quantity"`       // Particles per emit
	SlowFactor   float64    `yaml:"slow_factor"`    // Frequency multiplier once rapids start
	Hue          [2]float64 `yaml:"hue"`            // Degrees
	Saturation   [2]float64 `yaml:"saturation"`     // 0-1
	Lightness    [2]float64 `yaml:"lightness"`      // 0-1
	Background   string     `yaml:"background"`     // Base fill, hex
	SpeedXFactor float64    `yaml:"speed_x_factor"` // Spawn vx in [-maxV*f, maxV*f]
}

// MenuConfig holds the menu scene's ambient emitter settings.
type MenuConfig struct {
	DriftAcceleration float64 `yaml:"drift_acceleration"` // x acceleration applied to menu particles
	EmitterY          float64 `yaml:"emitter_y"`          // Fraction of screen height
	EmitterHeight     float64 `yaml:"emitter_height"`     // Fraction of screen height
	LeafGravity       float64 `yaml:"leaf_gravity"`       // px/s^2 while the title leaf falls
	LeafInitialSpeed  float64 `yaml:"leaf_initial_speed"` // Downward speed when the fall starts
	LeafDropSpeed     float64 `yaml:"leaf_drop_speed"`    // Leftward speed once on the water
	WaterLine         float64 `yaml:"water_line"`         // Fraction of screen height
}

// RocksConfig holds rapids obstacle spawner parameters.
// All positions are fractions of the viewport.
type RocksConfig struct {
	Count          int      `yaml:"count"`
	RandomFraction float64  `yaml:"random_fraction"`
	MinY           float64  `yaml:"min_y"`
	MaxY           float64  `yaml:"max_y"`
	Range          float64  `yaml:"range"`     // Jitter around each band centre
	XPadding       float64  `yaml:"x_padding"` // Horizontal margin
	Variants       [][2]int `yaml:"variants"`  // Half extents per rock variant
	FieldRadius    int      `yaml:"field_radius"`
	FieldStrength  float64  `yaml:"field_strength"` // 0-1 scale of rock field speed channel
}

// RapidsConfig holds the countdown before a rapids section.
type RapidsConfig struct {
	StartSeconds int `yaml:"start_seconds"`
}

// AssetsConfig holds procedural asset parameters.
type AssetsConfig struct {
	Seed            int64   `yaml:"seed"`
	RiverBankWidth  float64 `yaml:"river_bank_width"` // Fraction of width pushed back toward the centre
	RiverTurbulence float64 `yaml:"river_turbulence"` // 0-1 noise amplitude
	RiverNoiseScale float64 `yaml:"river_noise_scale"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged per perf log line
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines
}

// AutopilotConfig holds the steering heuristic used by headless runs.
type AutopilotConfig struct {
	Lookahead  float64 `yaml:"lookahead"`   // px upstream scanned for rocks
	Margin     float64 `yaml:"margin"`      // Extra clearance around rocks, px
	CentreBand float64 `yaml:"centre_band"` // Fraction of width either side of centre left alone
	MaxDrift   float64 `yaml:"max_drift"`   // Lateral speed the pilot counter-steers above, px/s
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width, Height  float64       // Screen size as float64
	SteerAccel     float64       // Player steering acceleration
	Lifespan       time.Duration // Particle lifetime
	Frequency      time.Duration // Particle emit interval
	TickDuration   time.Duration // Physics.DT as a Duration
	LogEveryNTicks int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Rocks.RandomFraction < 0 || c.Rocks.RandomFraction > 1 {
		return fmt.Errorf("config: rocks.random_fraction must be in [0,1], got %v", c.Rocks.RandomFraction)
	}
	if len(c.Rocks.Variants) == 0 {
		return fmt.Errorf("config: rocks.variants must not be empty")
	}
	counts := []struct {
		key string
		n   int
	}{
		{"rocks.count", c.Rocks.Count},
		{"rocks.field_radius", c.Rocks.FieldRadius},
		{"particles.pool_size", c.Particles.PoolSize},
		{"particles.quantity", c.Particles.Quantity},
	}
	for _, v := range counts {
		if v.n < 0 {
			return fmt.Errorf("config: %s must not be negative, got %d", v.key, v.n)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)
	c.Derived.SteerAccel = c.Water.MaxAcceleration * c.Player.SteerFactor
	c.Derived.Lifespan = time.Duration(c.Particles.LifespanMS) * time.Millisecond
	c.Derived.Frequency = time.Duration(c.Particles.FrequencyMS) * time.Millisecond
	c.Derived.TickDuration = time.Duration(c.Physics.DT * float64(time.Second))

	c.Derived.LogEveryNTicks = int(c.Telemetry.LogInterval / c.Physics.DT)
	if c.Derived.LogEveryNTicks < 1 {
		c.Derived.LogEveryNTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
