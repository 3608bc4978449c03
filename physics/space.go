package physics

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultGravity points down the screen, in physics units per second squared.
const DefaultGravity = 9.8

// Space owns a Chipmunk space and the bodies created through it.
type Space struct {
	space  *cp.Space
	bodies map[*cp.Body]*spaceBody
	logger *log.Logger
}

type SpaceOption func(*Space)

func WithGravity(g Vec) SpaceOption {
	return func(s *Space) {
		s.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
	}
}

func WithIterations(n uint) SpaceOption {
	return func(s *Space) {
		if n > 0 {
			s.space.Iterations = n
		}
	}
}

// WithSleeping lets idle bodies fall asleep after threshold seconds.
func WithSleeping(threshold float64) SpaceOption {
	return func(s *Space) {
		if threshold <= 0 || math.IsInf(threshold, 1) {
			return
		}
		s.space.SleepTimeThreshold = threshold
	}
}

func WithSpaceLogger(l *log.Logger) SpaceOption {
	return func(s *Space) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSpace creates a Chipmunk backed world.
func NewSpace(opts ...SpaceOption) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: DefaultGravity})

	s := &Space{
		space:  space,
		bodies: make(map[*cp.Body]*spaceBody),
		logger: log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

// BodyCount reports how many bodies were created and not yet destroyed.
func (s *Space) BodyCount() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

// Step advances the simulation. Bodies must not be created or destroyed
// while a step is running.
func (s *Space) Step(dt float64) {
	if s == nil || s.space == nil {
		return
	}
	for _, b := range s.bodies {
		if !b.allowSleep && b.inSpace && b.typ == DynamicBody {
			b.body.Activate()
		}
	}
	s.space.Step(dt)
}

// CreateBody adds a body to the space. Fixtures are attached afterwards.
func (s *Space) CreateBody(def BodyDef) (Body, error) {
	if s == nil || s.space == nil {
		return nil, fmt.Errorf("physics: create body: space is nil")
	}

	var body *cp.Body
	switch def.Type {
	case StaticBody:
		body = cp.NewStaticBody()
	case KinematicBody:
		body = cp.NewKinematicBody()
	case DynamicBody:
		// placeholder mass until fixtures arrive
		body = cp.NewBody(1, 1)
	default:
		return nil, fmt.Errorf("physics: create body: unknown body type %d", def.Type)
	}

	b := &spaceBody{
		owner:          s,
		body:           body,
		typ:            def.Type,
		linearDamping:  def.LinearDamping,
		angularDamping: def.AngularDamping,
		gravityScale:   def.GravityScale,
		bullet:         def.Bullet,
		fixedRotation:  def.FixedRotation,
		allowSleep:     def.AllowSleep,
	}
	body.SetPosition(cp.Vector{X: def.Position.X, Y: def.Position.Y})
	body.SetAngle(def.Angle)
	if def.Type != StaticBody {
		body.SetVelocityVector(cp.Vector{X: def.LinearVelocity.X, Y: def.LinearVelocity.Y})
		body.SetAngularVelocity(def.AngularVelocity)
	}
	if def.Type == DynamicBody {
		body.SetVelocityUpdateFunc(b.updateVelocity)
		b.updateMass()
	}

	s.bodies[body] = b
	if def.Active {
		b.attach()
	}
	return b, nil
}

// DestroyBody removes the body and all of its fixtures from the space.
func (s *Space) DestroyBody(body Body) error {
	if body == nil {
		return ErrNilBody
	}
	b, ok := body.(*spaceBody)
	if !ok || b.owner != s {
		return ErrForeignBody
	}
	if _, ok := s.bodies[b.body]; !ok {
		return fmt.Errorf("physics: destroy body: %w", ErrForeignBody)
	}
	b.detach()
	delete(s.bodies, b.body)
	b.fixtures = nil
	return nil
}

type spaceBody struct {
	owner    *Space
	body     *cp.Body
	typ      BodyType
	fixtures []*spaceFixture
	inSpace  bool

	linearDamping  float64
	angularDamping float64
	gravityScale   float64
	bullet         bool
	fixedRotation  bool
	allowSleep     bool
}

// updateVelocity applies per-body gravity scale and damping on top of the
// space-wide values.
func (b *spaceBody) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	linear := math.Exp(-b.linearDamping * dt)
	cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping*linear, dt)
	if b.angularDamping != b.linearDamping {
		body.SetAngularVelocity(body.AngularVelocity() * math.Exp(-(b.angularDamping-b.linearDamping)*dt))
	}
}

func (b *spaceBody) attach() {
	if b.inSpace {
		return
	}
	space := b.owner.space
	space.AddBody(b.body)
	for _, f := range b.fixtures {
		space.AddShape(f.shape)
	}
	b.inSpace = true
	b.updateMass()
}

func (b *spaceBody) detach() {
	if !b.inSpace {
		return
	}
	space := b.owner.space
	for _, f := range b.fixtures {
		space.RemoveShape(f.shape)
	}
	space.RemoveBody(b.body)
	b.inSpace = false
}

// updateMass lets Chipmunk accumulate mass, moment and center of gravity
// from the shapes in the space. Chipmunk resets all three whenever a shape
// is added, removed or reweighed, so this runs after each of those.
func (b *spaceBody) updateMass() {
	if b.typ != DynamicBody {
		return
	}
	b.body.AccumulateMassFromShapes()
	if !(b.body.Mass() > 0) {
		b.body.SetMass(1)
	}
	if !(b.body.Moment() > 0) {
		b.body.SetMoment(1)
	}
	if b.fixedRotation {
		b.body.SetMoment(math.Inf(1))
	}
}

// reindex refreshes the bounding boxes of a static body's shapes, which
// Chipmunk only recomputes for moving bodies.
func (b *spaceBody) reindex() {
	if !b.inSpace || b.typ != StaticBody {
		return
	}
	space := b.owner.space
	for _, f := range b.fixtures {
		space.RemoveShape(f.shape)
		space.AddShape(f.shape)
	}
}

func (b *spaceBody) CreateFixture(def FixtureDef) (Fixture, error) {
	if len(def.Verts) < 3 {
		return nil, fmt.Errorf("physics: create fixture with %d vertices: %w", len(def.Verts), ErrTooFewVerts)
	}
	f := &spaceFixture{
		verts:   append([]Vec(nil), def.Verts...),
		density: def.Density,
		filter:  def.Filter,
		sensor:  def.Sensor,
	}
	verts := f.cpVerts()
	f.shape = cp.NewPolyShapeRaw(b.body, len(verts), verts, 0)
	f.shape.SetFriction(def.Friction)
	f.shape.SetElasticity(def.Restitution)
	f.shape.SetSensor(def.Sensor)
	f.shape.SetFilter(cp.NewShapeFilter(def.Filter.Group, def.Filter.Category, def.Filter.Mask))
	f.body = b
	f.applyDensity()

	b.fixtures = append(b.fixtures, f)
	if b.inSpace {
		b.owner.space.AddShape(f.shape)
	}
	b.updateMass()
	return f, nil
}

func (b *spaceBody) Fixtures() []Fixture {
	out := make([]Fixture, 0, len(b.fixtures))
	for _, f := range b.fixtures {
		out = append(out, f)
	}
	return out
}

func (b *spaceBody) Position() Vec {
	p := b.body.Position()
	return Vec{X: p.X, Y: p.Y}
}

func (b *spaceBody) SetPosition(p Vec) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.reindex()
}

func (b *spaceBody) Angle() float64 {
	return b.body.Angle()
}

func (b *spaceBody) SetAngle(a float64) {
	b.body.SetAngle(a)
	b.reindex()
}

func (b *spaceBody) Type() BodyType {
	return b.typ
}

func (b *spaceBody) SetType(t BodyType) {
	if t == b.typ {
		return
	}
	switch t {
	case StaticBody:
		b.body.SetType(cp.BODY_STATIC)
	case KinematicBody:
		b.body.SetType(cp.BODY_KINEMATIC)
	case DynamicBody:
		b.body.SetType(cp.BODY_DYNAMIC)
		b.body.SetVelocityUpdateFunc(b.updateVelocity)
	default:
		b.owner.logger.Printf("Space: ignoring unknown body type %d", t)
		return
	}
	b.typ = t
	b.updateMass()
}

func (b *spaceBody) LinearVelocity() Vec {
	v := b.body.Velocity()
	return Vec{X: v.X, Y: v.Y}
}

func (b *spaceBody) SetLinearVelocity(v Vec) {
	if b.typ == StaticBody {
		return
	}
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (b *spaceBody) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

func (b *spaceBody) SetAngularVelocity(w float64) {
	if b.typ == StaticBody {
		return
	}
	b.body.SetAngularVelocity(w)
}

func (b *spaceBody) SetLinearDamping(d float64)  { b.linearDamping = d }
func (b *spaceBody) SetAngularDamping(d float64) { b.angularDamping = d }
func (b *spaceBody) SetGravityScale(s float64)   { b.gravityScale = s }

// SetBullet records the flag; Chipmunk has no continuous collision mode.
func (b *spaceBody) SetBullet(on bool) { b.bullet = on }

func (b *spaceBody) SetFixedRotation(on bool) {
	if b.fixedRotation == on {
		return
	}
	b.fixedRotation = on
	if on {
		b.body.SetAngularVelocity(0)
	}
	b.updateMass()
}

func (b *spaceBody) SetSleepingAllowed(on bool) {
	b.allowSleep = on
	if !on && b.inSpace && b.typ == DynamicBody {
		b.body.Activate()
	}
}

func (b *spaceBody) SetActive(on bool) {
	if on {
		b.attach()
		return
	}
	b.detach()
}

func (b *spaceBody) IsActive() bool {
	return b.inSpace
}

// SetAwake(true) wakes a sleeping body. Chipmunk has no way to force a body
// to sleep; it falls asleep on its own once it idles past the space's sleep
// threshold, so SetAwake(false) has no effect.
func (b *spaceBody) SetAwake(on bool) {
	if on && b.inSpace && b.typ == DynamicBody {
		b.body.Activate()
	}
}

// IsAwake reports whether the body is being simulated. Static and inactive
// bodies are never awake.
func (b *spaceBody) IsAwake() bool {
	return b.inSpace && b.typ != StaticBody && !b.body.IsSleeping()
}

type spaceFixture struct {
	body    *spaceBody
	shape   *cp.Shape
	verts   []Vec
	density float64
	filter  Filter
	sensor  bool
}

func (f *spaceFixture) cpVerts() []cp.Vector {
	out := make([]cp.Vector, len(f.verts))
	for i, v := range f.verts {
		out[i] = cp.Vector{X: v.X, Y: v.Y}
	}
	return out
}

func (f *spaceFixture) Verts() []Vec {
	return append([]Vec(nil), f.verts...)
}

// applyDensity weighs the shape by its area. The area sign follows the
// winding, so it is taken as an absolute value.
func (f *spaceFixture) applyDensity() {
	f.shape.SetMass(f.density * math.Abs(f.shape.Area()))
}

func (f *spaceFixture) SetDensity(d float64) {
	f.density = d
	f.applyDensity()
	if f.body != nil {
		f.body.updateMass()
	}
}

func (f *spaceFixture) SetFriction(v float64) {
	f.shape.SetFriction(v)
}

func (f *spaceFixture) SetRestitution(r float64) {
	f.shape.SetElasticity(r)
}

func (f *spaceFixture) SetFilter(filter Filter) {
	f.filter = filter
	f.shape.SetFilter(cp.NewShapeFilter(filter.Group, filter.Category, filter.Mask))
}

func (f *spaceFixture) Filter() Filter {
	return f.filter
}

func (f *spaceFixture) SetSensor(on bool) {
	f.sensor = on
	f.shape.SetSensor(on)
}

func (f *spaceFixture) IsSensor() bool {
	return f.sensor
}
