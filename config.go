package hydro

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Buoyancy modes
const (
	// BuoyancyVolume pushes the displaced fluid weight up through the
	// centroid of the submerged hull.
	BuoyancyVolume = "volume"
	// BuoyancyPressure integrates hydrostatic pressure over each fragment.
	BuoyancyPressure = "pressure"
)

// WaterSettings controls how the water provider is queried.
type WaterSettings struct {
	// one sample per triangle at its centroid instead of one per corner
	GroupQueries    bool `toml:"group_queries" yaml:"group_queries"`
	QueryHeights    bool `toml:"query_heights" yaml:"query_heights"`
	QueryVelocities bool `toml:"query_velocities" yaml:"query_velocities"`

	// added to every sampled height
	HeightOffset float64 `toml:"height_offset" yaml:"height_offset"`

	// surface height used when heights are not queried
	DefaultHeight float64 `toml:"default_height" yaml:"default_height"`
}

type Settings struct {
	FluidDensity float64 `toml:"fluid_density" yaml:"fluid_density"`
	Gravity      float64 `toml:"gravity" yaml:"gravity"`
	BuoyancyMode string  `toml:"buoyancy_mode" yaml:"buoyancy_mode"`

	PressureDrag DragCoefficients `toml:"pressure_drag" yaml:"pressure_drag"`
	SuctionDrag  DragCoefficients `toml:"suction_drag" yaml:"suction_drag"`
	SkinDrag     float64          `toml:"skin_drag" yaml:"skin_drag"`

	// bodies evaluated in parallel, 0 means GOMAXPROCS
	Workers int `toml:"workers" yaml:"workers"`

	Water WaterSettings `toml:"water" yaml:"water"`
}

func DefaultSettings() Settings {
	return Settings{
		FluidDensity: 1030,
		Gravity:      9.81,
		BuoyancyMode: BuoyancyVolume,
		PressureDrag: DragCoefficients{Linear: 20, Quadratic: 10},
		SuctionDrag:  DragCoefficients{Linear: 10, Quadratic: 5},
		SkinDrag:     0.01,
		Water: WaterSettings{
			GroupQueries:    true,
			QueryHeights:    true,
			QueryVelocities: true,
		},
	}
}

// LoadSettings reads a .toml or .yaml file over the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("settings: unsupported file type %q", ext)
	}
	if err != nil {
		return s, fmt.Errorf("settings: decoding %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case !(s.FluidDensity > 0) || !IsFinite(s.FluidDensity):
		return fmt.Errorf("settings: fluid_density must be positive, got %v", s.FluidDensity)
	case !(s.Gravity >= 0) || !IsFinite(s.Gravity):
		return fmt.Errorf("settings: gravity must be non-negative, got %v", s.Gravity)
	case s.BuoyancyMode != BuoyancyVolume && s.BuoyancyMode != BuoyancyPressure:
		return fmt.Errorf("settings: buoyancy_mode must be %q or %q, got %q", BuoyancyVolume, BuoyancyPressure, s.BuoyancyMode)
	case s.PressureDrag.Linear < 0 || s.PressureDrag.Quadratic < 0 ||
		s.SuctionDrag.Linear < 0 || s.SuctionDrag.Quadratic < 0 || s.SkinDrag < 0:
		return fmt.Errorf("settings: drag coefficients must be non-negative")
	case s.Workers < 0:
		return fmt.Errorf("settings: workers must be non-negative, got %d", s.Workers)
	case !IsFinite(s.Water.HeightOffset) || !IsFinite(s.Water.DefaultHeight):
		return fmt.Errorf("settings: water heights must be finite")
	}
	return nil
}

func (s Settings) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (s Settings) forceModel() ForceModel {
	return ForceModel{
		FluidDensity: s.FluidDensity,
		Gravity:      s.Gravity,
		Pressure:     s.BuoyancyMode == BuoyancyPressure,
		PressureDrag: s.PressureDrag,
		SuctionDrag:  s.SuctionDrag,
		SkinDrag:     s.SkinDrag,
	}
}
