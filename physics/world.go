// Package physics describes the rigid-body world that polygon shapes are
// assembled into, and provides a Chipmunk2D backed implementation of it.
package physics

import "errors"

var (
	ErrNilBody     = errors.New("physics: body is nil")
	ErrForeignBody = errors.New("physics: body belongs to another world")
	ErrTooFewVerts = errors.New("physics: fixture needs at least 3 vertices")
)

// BodyType selects how the solver treats a body.
type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	case DynamicBody:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Vec is a point or direction in physics units.
type Vec struct {
	X, Y float64
}

// Filter holds the collision filtering bits of a fixture. Fixtures sharing a
// non-zero group never collide with each other.
type Filter struct {
	Category uint
	Mask     uint
	Group    uint
}

// DefaultFilter collides with everything.
func DefaultFilter() Filter {
	return Filter{Category: 0x0001, Mask: ^uint(0)}
}

// BodyDef is the record handed to World.CreateBody.
type BodyDef struct {
	Type            BodyType
	Position        Vec
	Angle           float64
	LinearVelocity  Vec
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	GravityScale    float64
	Bullet          bool
	FixedRotation   bool
	AllowSleep      bool
	Awake           bool
	Active          bool
}

// DefaultBodyDef returns an awake, active dynamic body at the origin.
func DefaultBodyDef() BodyDef {
	return BodyDef{
		Type:         DynamicBody,
		GravityScale: 1,
		AllowSleep:   true,
		Awake:        true,
		Active:       true,
	}
}

// FixtureDef is the material template for a fixture. Verts is the convex
// polygon in body-local physics units.
type FixtureDef struct {
	Verts       []Vec
	Density     float64
	Friction    float64
	Restitution float64
	Filter      Filter
	Sensor      bool
}

func DefaultFixtureDef() FixtureDef {
	return FixtureDef{
		Density:  1,
		Friction: 0.2,
		Filter:   DefaultFilter(),
	}
}

// World creates and frees bodies.
type World interface {
	CreateBody(def BodyDef) (Body, error)
	DestroyBody(b Body) error
}

// Body is a live rigid body owned by a World.
type Body interface {
	CreateFixture(def FixtureDef) (Fixture, error)
	Fixtures() []Fixture

	Position() Vec
	SetPosition(p Vec)
	Angle() float64
	SetAngle(a float64)
	Type() BodyType
	SetType(t BodyType)

	LinearVelocity() Vec
	SetLinearVelocity(v Vec)
	AngularVelocity() float64
	SetAngularVelocity(w float64)
	SetLinearDamping(d float64)
	SetAngularDamping(d float64)
	SetGravityScale(s float64)

	SetBullet(on bool)
	SetFixedRotation(on bool)
	SetSleepingAllowed(on bool)
	SetActive(on bool)
	IsActive() bool
	SetAwake(on bool)
	IsAwake() bool
}

// Fixture is one convex shape attached to a Body.
type Fixture interface {
	Verts() []Vec
	SetDensity(d float64)
	SetFriction(f float64)
	SetRestitution(r float64)
	SetFilter(f Filter)
	Filter() Filter
	SetSensor(on bool)
	IsSensor() bool
}
