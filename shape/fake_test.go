package shape

import (
	"errors"

	"github.com/milk9111/polybody/physics"
)

var errFakeFixture = errors.New("fake: fixture refused")

type fakeWorld struct {
	created   []*fakeBody
	destroyed []*fakeBody
	createErr error
	// failFixture makes the n-th fixture (1-based) of every body fail.
	failFixture int
}

func (w *fakeWorld) CreateBody(def physics.BodyDef) (physics.Body, error) {
	if w.createErr != nil {
		return nil, w.createErr
	}
	b := &fakeBody{world: w, def: def, pos: def.Position, angle: def.Angle, typ: def.Type, active: def.Active, awake: def.Awake}
	w.created = append(w.created, b)
	return b, nil
}

func (w *fakeWorld) DestroyBody(b physics.Body) error {
	fb, ok := b.(*fakeBody)
	if !ok {
		return physics.ErrForeignBody
	}
	w.destroyed = append(w.destroyed, fb)
	return nil
}

type fakeBody struct {
	world    *fakeWorld
	def      physics.BodyDef
	fixtures []*fakeFixture

	pos            physics.Vec
	angle          float64
	typ            physics.BodyType
	vel            physics.Vec
	angVel         float64
	linearDamping  float64
	angularDamping float64
	gravityScale   float64
	bullet         bool
	fixedRotation  bool
	allowSleep     bool
	active         bool
	awake          bool
}

func (b *fakeBody) CreateFixture(def physics.FixtureDef) (physics.Fixture, error) {
	if b.world.failFixture > 0 && len(b.fixtures)+1 == b.world.failFixture {
		return nil, errFakeFixture
	}
	f := &fakeFixture{def: def, verts: append([]physics.Vec(nil), def.Verts...), filter: def.Filter, sensor: def.Sensor}
	b.fixtures = append(b.fixtures, f)
	return f, nil
}

func (b *fakeBody) Fixtures() []physics.Fixture {
	out := make([]physics.Fixture, 0, len(b.fixtures))
	for _, f := range b.fixtures {
		out = append(out, f)
	}
	return out
}

func (b *fakeBody) Position() physics.Vec           { return b.pos }
func (b *fakeBody) SetPosition(p physics.Vec)       { b.pos = p }
func (b *fakeBody) Angle() float64                  { return b.angle }
func (b *fakeBody) SetAngle(a float64)              { b.angle = a }
func (b *fakeBody) Type() physics.BodyType          { return b.typ }
func (b *fakeBody) SetType(t physics.BodyType)      { b.typ = t }
func (b *fakeBody) LinearVelocity() physics.Vec     { return b.vel }
func (b *fakeBody) SetLinearVelocity(v physics.Vec) { b.vel = v }
func (b *fakeBody) AngularVelocity() float64        { return b.angVel }
func (b *fakeBody) SetAngularVelocity(w float64)    { b.angVel = w }
func (b *fakeBody) SetLinearDamping(d float64)      { b.linearDamping = d }
func (b *fakeBody) SetAngularDamping(d float64)     { b.angularDamping = d }
func (b *fakeBody) SetGravityScale(s float64)       { b.gravityScale = s }
func (b *fakeBody) SetBullet(on bool)               { b.bullet = on }
func (b *fakeBody) SetFixedRotation(on bool)        { b.fixedRotation = on }
func (b *fakeBody) SetSleepingAllowed(on bool)      { b.allowSleep = on }
func (b *fakeBody) SetActive(on bool)               { b.active = on }
func (b *fakeBody) IsActive() bool                  { return b.active }
func (b *fakeBody) SetAwake(on bool)                { b.awake = on }
func (b *fakeBody) IsAwake() bool                   { return b.awake }

type fakeFixture struct {
	def         physics.FixtureDef
	verts       []physics.Vec
	density     float64
	friction    float64
	restitution float64
	filter      physics.Filter
	sensor      bool
}

func (f *fakeFixture) Verts() []physics.Vec         { return f.verts }
func (f *fakeFixture) SetDensity(d float64)         { f.density = d }
func (f *fakeFixture) SetFriction(v float64)        { f.friction = v }
func (f *fakeFixture) SetRestitution(r float64)     { f.restitution = r }
func (f *fakeFixture) SetFilter(flt physics.Filter) { f.filter = flt }
func (f *fakeFixture) Filter() physics.Filter       { return f.filter }
func (f *fakeFixture) SetSensor(on bool)            { f.sensor = on }
func (f *fakeFixture) IsSensor() bool               { return f.sensor }
