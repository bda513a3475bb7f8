package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of the simulation. Defaults are baked in;
// a TOML file overrides individual keys.
type Config struct {
	Window  Window  `toml:"window"`
	Network Network `toml:"network"`
	Layout  Layout  `toml:"layout"`
	Sim     Sim     `toml:"sim"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Network struct {
	MinEntities  int     `toml:"min_entities"`
	MaxEntities  int     `toml:"max_entities"`
	Density      float64 `toml:"density"` // entity count = sqrt(area)/density, clamped
	MinRadius    float64 `toml:"min_radius"`
	MaxRadius    float64 `toml:"max_radius"`
	SourceShare  float64 `toml:"source_share"`
	ProcessShare float64 `toml:"process_share"`
	PrunePasses  int     `toml:"prune_passes"`
}

type Layout struct {
	Spacing        float64 `toml:"spacing"` // minimum spacing the repulsion force defends
	CutoffFactor   float64 `toml:"cutoff_factor"`
	Repulsion      float64 `toml:"repulsion"`
	Attraction     float64 `toml:"attraction"`
	BoundaryPad    float64 `toml:"boundary_pad"`
	Boundary       float64 `toml:"boundary"`
	ObstaclePad    float64 `toml:"obstacle_pad"`
	ObstacleRange  float64 `toml:"obstacle_range"`
	Obstacle       float64 `toml:"obstacle"`
	Iterations     int     `toml:"iterations"`
	MaxStep        float64 `toml:"max_step"`
	Cooling        float64 `toml:"cooling"`
	Blend          float64 `toml:"blend"` // share of freshly computed velocity kept after a pass
	Speed          float64 `toml:"speed"` // animation speed factor for integration
	Damping        float64 `toml:"damping"`
	Bounce         float64 `toml:"bounce"`
	StrongStrength float64 `toml:"strong_strength"`
	GentleStrength float64 `toml:"gentle_strength"`
	IntervalMs     float64 `toml:"interval_ms"` // gentle pass cadence
}

type Sim struct {
	CycleMs           float64 `toml:"cycle_ms"`
	ActiveFraction    float64 `toml:"active_fraction"`
	DormantOpacity    float64 `toml:"dormant_opacity"`
	ActiveThreshold   float64 `toml:"active_threshold"`
	OpacityEase       float64 `toml:"opacity_ease"`
	EmitMinMs         float64 `toml:"emit_min_ms"`
	EmitMaxMs         float64 `toml:"emit_max_ms"`
	SkipChance        float64 `toml:"skip_chance"`
	ProcessEmitChance float64 `toml:"process_emit_chance"`
	ForwardChance     float64 `toml:"forward_chance"`
	VisibleThreshold  float64 `toml:"visible_threshold"`
	MinPulseSpeed     float64 `toml:"min_pulse_speed"` // progress per reference frame
	MaxPulseSpeed     float64 `toml:"max_pulse_speed"`
	PoolSize          int     `toml:"pool_size"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "nodepulse",
		},
		Network: Network{
			MinEntities:  15,
			MaxEntities:  50,
			Density:      20,
			MinRadius:    4,
			MaxRadius:    8,
			SourceShare:  0.2,
			ProcessShare: 0.6,
			PrunePasses:  5,
		},
		Layout: Layout{
			Spacing:        90,
			CutoffFactor:   3,
			Repulsion:      1.2,
			Attraction:     0.015,
			BoundaryPad:    80,
			Boundary:       2.5,
			ObstaclePad:    40,
			ObstacleRange:  160,
			Obstacle:       3,
			Iterations:     40,
			MaxStep:        12,
			Cooling:        0.95,
			Blend:          0.7,
			Speed:          0.35,
			Damping:        0.999,
			Bounce:         0.5,
			StrongStrength: 1.5,
			GentleStrength: 0.5,
			IntervalMs:     5000,
		},
		Sim: Sim{
			CycleMs:           15000,
			ActiveFraction:    0.7,
			DormantOpacity:    0.3,
			ActiveThreshold:   0.7,
			OpacityEase:       0.08,
			EmitMinMs:         2000,
			EmitMaxMs:         5000,
			SkipChance:        0.7,
			ProcessEmitChance: 0.03,
			ForwardChance:     0.4,
			VisibleThreshold:  0.5,
			MinPulseSpeed:     0.01,
			MaxPulseSpeed:     0.03,
			PoolSize:          64,
		},
	}
}

// Load returns the defaults overridden by the TOML file at path.
// An empty path yields the plain defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Network.MinEntities < 1 || c.Network.MaxEntities < c.Network.MinEntities {
		return fmt.Errorf("network entity bounds %d..%d invalid", c.Network.MinEntities, c.Network.MaxEntities)
	}
	if c.Network.MinRadius <= 0 || c.Network.MaxRadius < c.Network.MinRadius {
		return fmt.Errorf("network radius band %v..%v invalid", c.Network.MinRadius, c.Network.MaxRadius)
	}
	if c.Layout.Spacing <= 0 || c.Layout.Iterations < 1 {
		return fmt.Errorf("layout spacing/iterations invalid")
	}
	if c.Sim.MinPulseSpeed <= 0 || c.Sim.MaxPulseSpeed < c.Sim.MinPulseSpeed {
		return fmt.Errorf("pulse speed band %v..%v invalid", c.Sim.MinPulseSpeed, c.Sim.MaxPulseSpeed)
	}
	return nil
}
