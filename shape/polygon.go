package shape

import (
	"fmt"
	"log"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/physics"
)

// State tracks where a Polygon is in its lifecycle.
type State int

const (
	Uninitialized State = iota
	ShapeBuilt
	BodyCreated
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ShapeBuilt:
		return "shape-built"
	case BodyCreated:
		return "body-created"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Polygon is a rigid body made of one or more convex polygon fixtures. The
// vertices must be counter-clockwise for a right-handed coordinate system;
// concave outlines are given as several convex pieces.
//
// A Polygon is not safe for concurrent use, and Create/Destroy must not run
// while the world is stepping.
type Polygon struct {
	state     State
	vertices  VertexSet
	descs     []*Descriptor
	body      physics.Body
	bodyState BodyState
	fixture   physics.FixtureDef

	world  physics.World
	ratio  float64
	logger *log.Logger
	err    error
}

type Option func(*Polygon)

// WithWorld sets the world Create assembles the body into.
func WithWorld(w physics.World) Option {
	return func(p *Polygon) {
		p.world = w
	}
}

// WithRatio overrides common.Ratio for this polygon.
func WithRatio(r float64) Option {
	return func(p *Polygon) {
		p.ratio = r
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Polygon) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithBodyType(t physics.BodyType) Option {
	return func(p *Polygon) {
		p.bodyState.Type = t
	}
}

// WithFixture replaces the material template shared by every fixture.
func WithFixture(def physics.FixtureDef) Option {
	return func(p *Polygon) {
		def.Verts = nil
		p.fixture = def
	}
}

// NewPolygon builds the convex shapes for vertices at design position (x, y).
// Nil or empty vertices fall back to DefaultVertexSet. A sub-polygon with
// fewer than 3 or more than 8 vertices fails with ErrInvalidPolygon.
func NewPolygon(x, y float64, vertices [][][2]float64, opts ...Option) (*Polygon, error) {
	p := &Polygon{
		bodyState: DefaultBodyState(x, y),
		fixture:   physics.DefaultFixtureDef(),
		ratio:     common.Ratio,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.vertices = NewVertexSet(vertices, p.logger)
	descs, err := Build(p.vertices, p.ratio)
	if err != nil {
		return nil, err
	}
	p.descs = descs
	p.state = ShapeBuilt
	return p, nil
}

// NewDefaultPolygon is a NewPolygon with the default box.
func NewDefaultPolygon(x, y float64, opts ...Option) (*Polygon, error) {
	return NewPolygon(x, y, nil, opts...)
}

// Create assembles the body and its fixtures in the world. It can only run
// once; a second call reports ErrAlreadyCreated.
func (p *Polygon) Create() (*Polygon, error) {
	switch p.state {
	case Uninitialized:
		return p, ErrNotBuilt
	case BodyCreated:
		return p, ErrAlreadyCreated
	case Destroyed:
		return p, fmt.Errorf("shape: create: %w", ErrStaleEntity)
	}
	if p.world == nil {
		return p, ErrNoWorld
	}

	descs := p.descs
	p.descs = nil
	if descs == nil {
		// an earlier failed Create consumed them
		var err error
		descs, err = Build(p.vertices, p.ratio)
		if err != nil {
			return p, err
		}
	}

	body, err := Assemble(descs, &p.bodyState, p.fixture, p.world, p.ratio)
	if err != nil {
		return p, err
	}
	p.body = body
	p.state = BodyCreated
	return p, nil
}

// Destroy frees the body and drops the vertex data. The polygon cannot be
// used afterwards.
func (p *Polygon) Destroy() error {
	if p.state == Destroyed {
		return fmt.Errorf("shape: destroy: %w", ErrStaleEntity)
	}

	var err error
	if p.body != nil && p.world != nil {
		if derr := p.world.DestroyBody(p.body); derr != nil {
			err = fmt.Errorf("shape: destroy body: %w", derr)
		}
	}
	releaseAll(p.descs)
	p.descs = nil
	p.vertices = nil
	p.body = nil
	p.state = Destroyed
	return err
}

// Reset moves the body back to design position (x, y) and stops it. The
// angle is cleared as well when the ResetAngle flag is set.
func (p *Polygon) Reset(x, y float64) error {
	if p.state == Destroyed {
		return fmt.Errorf("shape: reset: %w", ErrStaleEntity)
	}
	p.SetPosition(x, y)
	if p.bodyState.ResetAngle {
		p.SetAngle(0)
	}
	p.SetLinearVelocity(0, 0)
	p.SetAngularVelocity(0)
	p.SetAwake(true)
	return nil
}

func (p *Polygon) State() State {
	return p.state
}

// Body returns the live body, nil before Create and after Destroy.
func (p *Polygon) Body() physics.Body {
	return p.body
}

func (p *Polygon) World() physics.World {
	return p.world
}

func (p *Polygon) Ratio() float64 {
	return p.ratio
}

// Position reports the body position once created, in physics units. Before
// Create it is the design position the polygon was built with.
func (p *Polygon) Position() physics.Vec {
	if p.body != nil {
		return p.body.Position()
	}
	return p.bodyState.Position
}

func (p *Polygon) Angle() float64 {
	if p.body != nil {
		return p.body.Angle()
	}
	return p.bodyState.Angle
}

// Awake reports whether the live body is being simulated. Before Create it
// returns the requested initial state.
func (p *Polygon) Awake() bool {
	if p.body != nil {
		return p.body.IsAwake()
	}
	return p.bodyState.Awake
}

// Vertices returns a copy of the design-unit vertex set.
func (p *Polygon) Vertices() VertexSet {
	return p.vertices.Clone()
}

// Descriptors returns the built shapes that have not been assembled yet.
func (p *Polygon) Descriptors() []*Descriptor {
	return p.descs
}

func (p *Polygon) BodyState() BodyState {
	return p.bodyState
}

func (p *Polygon) FixtureDef() physics.FixtureDef {
	return p.fixture
}

// Err returns the first error a setter ran into.
func (p *Polygon) Err() error {
	return p.err
}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon(%s, %d pieces, %v)", p.state, len(p.vertices), p.bodyState.Type)
}
