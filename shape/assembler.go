package shape

import (
	"fmt"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/physics"
)

// BodyState holds everything a body is created from. Position is in design
// units until Assemble runs, then in physics units.
type BodyState struct {
	Position        physics.Vec
	Angle           float64
	Type            physics.BodyType
	LinearVelocity  physics.Vec
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	GravityScale    float64
	Bullet          bool
	FixedRotation   bool
	AllowSleep      bool
	Active          bool
	Awake           bool

	// ResetAngle zeroes the angle when the body is respawned through Reset.
	ResetAngle bool
	// Draggable marks bodies a mouse joint may grab.
	Draggable bool
	// SurviveReset keeps the body alive across a state reset.
	SurviveReset bool
}

// DefaultBodyState mirrors physics.DefaultBodyDef at the given design position.
func DefaultBodyState(x, y float64) BodyState {
	def := physics.DefaultBodyDef()
	return BodyState{
		Position:     physics.Vec{X: x, Y: y},
		Type:         def.Type,
		GravityScale: def.GravityScale,
		AllowSleep:   def.AllowSleep,
		Active:       def.Active,
		Awake:        def.Awake,
		ResetAngle:   true,
	}
}

func (s *BodyState) bodyDef(pos physics.Vec) physics.BodyDef {
	return physics.BodyDef{
		Type:            s.Type,
		Position:        pos,
		Angle:           s.Angle,
		LinearVelocity:  s.LinearVelocity,
		AngularVelocity: s.AngularVelocity,
		LinearDamping:   s.LinearDamping,
		AngularDamping:  s.AngularDamping,
		GravityScale:    s.GravityScale,
		Bullet:          s.Bullet,
		FixedRotation:   s.FixedRotation,
		AllowSleep:      s.AllowSleep,
		Awake:           s.Awake,
		Active:          s.Active,
	}
}

// Assemble creates one body in world and one fixture per descriptor, in
// order. The descriptors are owned by Assemble from here on: each one is
// released right after its fixture exists, and all of them are released when
// an error cuts the loop short. On success state.Position is rewritten in
// physics units.
func Assemble(descs []*Descriptor, state *BodyState, fixture physics.FixtureDef, world physics.World, ratio float64) (physics.Body, error) {
	defer releaseAll(descs)

	if world == nil {
		return nil, ErrNoWorld
	}
	if ratio <= 0 {
		return nil, fmt.Errorf("shape: assemble with ratio %v: %w", ratio, ErrInvalidRatio)
	}
	if state == nil {
		def := DefaultBodyState(0, 0)
		state = &def
	}

	pos := physics.Vec{X: common.ToPhysics(state.Position.X, ratio), Y: common.ToPhysics(state.Position.Y, ratio)}
	body, err := world.CreateBody(state.bodyDef(pos))
	if err != nil {
		return nil, fmt.Errorf("shape: create body: %w", err)
	}

	for i, d := range descs {
		def := fixture
		def.Verts = d.Verts()
		_, err := body.CreateFixture(def)
		d.Release()
		if err != nil {
			if derr := world.DestroyBody(body); derr != nil {
				return nil, fmt.Errorf("shape: create fixture %d: %w (destroy body: %v)", i, err, derr)
			}
			return nil, fmt.Errorf("shape: create fixture %d: %w", i, err)
		}
	}

	state.Position = pos
	if state.Active && !state.Awake {
		body.SetAwake(false)
	}
	return body, nil
}
