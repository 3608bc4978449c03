package prefabs

import (
	"fmt"
	"strings"

	"github.com/milk9111/polybody/physics"
	"github.com/milk9111/polybody/shape"
	"gopkg.in/yaml.v3"
)

// DefaultPolygonsFile is the embedded prefab used when no file is named.
const DefaultPolygonsFile = "polygons.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PolygonSetSpec struct {
	Polygons []PolygonSpec `yaml:"polygons"`
}

type PolygonSpec struct {
	Name         string         `yaml:"name"`
	Type         string         `yaml:"type"`
	Position     PositionSpec   `yaml:"position"`
	Angle        float64        `yaml:"angle"`
	Vertices     [][][2]float64 `yaml:"vertices"`
	Material     MaterialSpec   `yaml:"material"`
	Filter       FilterSpec     `yaml:"filter"`
	Body         BodyTuningSpec `yaml:"body"`
	Velocity     *VelocitySpec  `yaml:"velocity"`
	Draggable    bool           `yaml:"draggable"`
	ResetAngle   *bool          `yaml:"reset_angle"`
	SurviveReset bool           `yaml:"survive_reset"`
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VelocitySpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Angular float64 `yaml:"angular"`
}

// MaterialSpec fields left out of the YAML keep the fixture defaults.
type MaterialSpec struct {
	Density     *float64 `yaml:"density"`
	Friction    *float64 `yaml:"friction"`
	Restitution *float64 `yaml:"restitution"`
	Sensor      bool     `yaml:"sensor"`
}

type FilterSpec struct {
	Category *uint `yaml:"category"`
	Mask     *uint `yaml:"mask"`
	Group    uint  `yaml:"group"`
}

type BodyTuningSpec struct {
	LinearDamping  float64  `yaml:"linear_damping"`
	AngularDamping float64  `yaml:"angular_damping"`
	GravityScale   *float64 `yaml:"gravity_scale"`
	FixedRotation  bool     `yaml:"fixed_rotation"`
	Bullet         bool     `yaml:"bullet"`
	AllowSleep     *bool    `yaml:"allow_sleep"`
	Awake          *bool    `yaml:"awake"`
	Active         *bool    `yaml:"active"`
}

// LoadPolygonSet loads a polygon prefab, preferring the on-disk copy.
func LoadPolygonSet(filename string) (*PolygonSetSpec, error) {
	if filename == "" {
		filename = DefaultPolygonsFile
	}
	spec, err := LoadSpec[PolygonSetSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func ParsePolygonSet(data []byte) (*PolygonSetSpec, error) {
	var spec PolygonSetSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal polygons: %w", err)
	}
	return &spec, nil
}

// ParseBodyType accepts static, kinematic or dynamic; empty means dynamic.
func ParseBodyType(s string) (physics.BodyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dynamic":
		return physics.DynamicBody, nil
	case "static":
		return physics.StaticBody, nil
	case "kinematic":
		return physics.KinematicBody, nil
	default:
		return physics.DynamicBody, fmt.Errorf("prefabs: unknown body type %q", s)
	}
}

// Build constructs the polygon described by the prefab entry. The body is not
// created yet; call Create on the result.
func (s PolygonSpec) Build(world physics.World, opts ...shape.Option) (*shape.Polygon, error) {
	typ, err := ParseBodyType(s.Type)
	if err != nil {
		return nil, fmt.Errorf("prefabs: polygon %q: %w", s.Name, err)
	}
	opts = append([]shape.Option{shape.WithWorld(world), shape.WithBodyType(typ)}, opts...)
	p, err := shape.NewPolygon(s.Position.X, s.Position.Y, s.Vertices, opts...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: polygon %q: %w", s.Name, err)
	}
	Apply(s, p)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("prefabs: polygon %q: %w", s.Name, err)
	}
	return p, nil
}

// Apply pushes the prefab tuning through the fluent setters. Position,
// vertices and body type are construction arguments and are not applied.
func Apply[C shape.Configurable[C]](s PolygonSpec, c C) C {
	c = c.SetAngle(s.Angle).
		SetSensor(s.Material.Sensor).
		SetGroupIndex(s.Filter.Group).
		SetLinearDamping(s.Body.LinearDamping).
		SetAngularDamping(s.Body.AngularDamping).
		SetFixedRotation(s.Body.FixedRotation).
		SetBullet(s.Body.Bullet).
		SetDraggable(s.Draggable).
		SetSurviveReset(s.SurviveReset)

	if s.Material.Density != nil {
		c = c.SetDensity(*s.Material.Density)
	}
	if s.Material.Friction != nil {
		c = c.SetFriction(*s.Material.Friction)
	}
	if s.Material.Restitution != nil {
		c = c.SetRestitution(*s.Material.Restitution)
	}
	if s.Filter.Category != nil {
		c = c.SetCategoryBits(*s.Filter.Category)
	}
	if s.Filter.Mask != nil {
		c = c.SetMaskBits(*s.Filter.Mask)
	}
	if s.Body.GravityScale != nil {
		c = c.SetGravityScale(*s.Body.GravityScale)
	}
	if s.Body.AllowSleep != nil {
		c = c.SetAllowSleep(*s.Body.AllowSleep)
	}
	if s.Body.Awake != nil {
		c = c.SetAwake(*s.Body.Awake)
	}
	if s.Body.Active != nil {
		c = c.SetActive(*s.Body.Active)
	}
	if s.ResetAngle != nil {
		c = c.SetResetAngle(*s.ResetAngle)
	}
	if s.Velocity != nil {
		c = c.SetLinearVelocity(s.Velocity.X, s.Velocity.Y).SetAngularVelocity(s.Velocity.Angular)
	}
	return c
}

// BuildAll builds every polygon in the set. It stops at the first error and
// destroys the polygons it already built.
func (s *PolygonSetSpec) BuildAll(world physics.World, opts ...shape.Option) ([]*shape.Polygon, error) {
	out := make([]*shape.Polygon, 0, len(s.Polygons))
	for _, ps := range s.Polygons {
		p, err := ps.Build(world, opts...)
		if err != nil {
			for _, built := range out {
				_ = built.Destroy()
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
