package prefabs

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const (
	AlienFile     = "alien.yaml"
	ShipFile      = "ship.yaml"
	AsteroidsFile = "asteroids.yaml"
)

// LoadSpecFrom decodes the prefab filename from src into a T.
func LoadSpecFrom[T any](src Source, filename string) (T, error) {
	var zero T
	data, err := src.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// AlienSpec tunes every alien in the arena. Zero values mean "use the
// built-in default".
type AlienSpec struct {
	Name            string                `yaml:"name"`
	DetectionRadius float64               `yaml:"detection_radius"`
	NormalSpeed     float64               `yaml:"normal_speed"`
	PursuitSpeed    float64               `yaml:"pursuit_speed"`
	PathfindSpeed   float64               `yaml:"pathfind_speed"`
	Mass            float64               `yaml:"mass"`
	MaxForce        float64               `yaml:"max_force"`
	LoseFactor      float64               `yaml:"lose_factor"`
	SensorScript    string                `yaml:"sensor_script"`
	Colors          map[string]*YAMLColor `yaml:"colors"`
}

type ShipSpec struct {
	Name           string     `yaml:"name"`
	Thrust         float64    `yaml:"thrust"`
	TurnRate       float64    `yaml:"turn_rate"`
	TopSpeed       float64    `yaml:"top_speed"`
	OverdriveSpeed float64    `yaml:"overdrive_speed"`
	MaxForce       float64    `yaml:"max_force"`
	Fuel           FuelSpec   `yaml:"fuel"`
	Color          *YAMLColor `yaml:"color"`
}

type FuelSpec struct {
	Capacity float64 `yaml:"capacity"`
	Drain    float64 `yaml:"drain"`
	Regen    float64 `yaml:"regen"`
}

type AsteroidFieldSpec struct {
	Count     int        `yaml:"count"`
	MaxRadius float64    `yaml:"max_radius"`
	Color     *YAMLColor `yaml:"color"`
}

// YAMLColor decodes a colour given as "#rrggbb", "#rrggbbaa" or an SVG
// colour name such as "crimson".
type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: colour at line %d is not a scalar", value.Line)
	}
	col, err := parseColor(value.Value)
	if err != nil {
		return fmt.Errorf("prefabs: colour at line %d: %w", value.Line, err)
	}
	c.Color = col
	return nil
}

func parseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return named, nil
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil {
		return nil, fmt.Errorf("%q is neither a colour name nor hex", s)
	}
	switch len(raw) {
	case 3:
		return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: 0xff}, nil
	case 4:
		return color.NRGBA{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}, nil
	}
	return nil, fmt.Errorf("%q needs 6 or 8 hex digits", s)
}
