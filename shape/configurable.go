package shape

import (
	"fmt"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/physics"
)

// Configurable is the chaining surface shared by body shapes. Every setter
// stores the value and, once a body exists, forwards it unchanged to the
// body or to each fixture. After Destroy the setters do nothing and Err
// reports ErrStaleEntity. T is the implementing shape, so a chain keeps its
// concrete type and can end in Create.
type Configurable[T any] interface {
	SetPosition(x, y float64) T
	SetAngle(a float64) T
	SetType(t physics.BodyType) T
	SetLinearVelocity(x, y float64) T
	SetAngularVelocity(w float64) T
	SetLinearDamping(d float64) T
	SetAngularDamping(d float64) T
	SetGravityScale(s float64) T
	SetBullet(on bool) T
	SetFixedRotation(on bool) T
	SetAllowSleep(on bool) T
	SetActive(on bool) T
	SetAwake(on bool) T

	SetDensity(d float64) T
	SetFriction(f float64) T
	SetRestitution(r float64) T
	SetCategoryBits(bits uint) T
	SetMaskBits(bits uint) T
	SetGroupIndex(group uint) T
	SetSensor(on bool) T

	SetResetAngle(on bool) T
	SetDraggable(on bool) T
	SetSurviveReset(on bool) T

	Err() error
}

var _ Configurable[*Polygon] = (*Polygon)(nil)

func (p *Polygon) mutate(name string, fn func()) *Polygon {
	if p.state == Destroyed {
		if p.err == nil {
			p.err = fmt.Errorf("shape: %s: %w", name, ErrStaleEntity)
		}
		return p
	}
	fn()
	return p
}

func (p *Polygon) eachFixture(fn func(f physics.Fixture)) {
	if p.body == nil {
		return
	}
	for _, f := range p.body.Fixtures() {
		fn(f)
	}
}

// SetPosition takes design units.
func (p *Polygon) SetPosition(x, y float64) *Polygon {
	return p.mutate("SetPosition", func() {
		if p.body == nil {
			p.bodyState.Position = physics.Vec{X: x, Y: y}
			return
		}
		pos := physics.Vec{X: common.ToPhysics(x, p.ratio), Y: common.ToPhysics(y, p.ratio)}
		p.bodyState.Position = pos
		p.body.SetPosition(pos)
	})
}

func (p *Polygon) SetAngle(a float64) *Polygon {
	return p.mutate("SetAngle", func() {
		p.bodyState.Angle = a
		if p.body != nil {
			p.body.SetAngle(a)
		}
	})
}

func (p *Polygon) SetType(t physics.BodyType) *Polygon {
	return p.mutate("SetType", func() {
		p.bodyState.Type = t
		if p.body != nil {
			p.body.SetType(t)
		}
	})
}

func (p *Polygon) SetLinearVelocity(x, y float64) *Polygon {
	return p.mutate("SetLinearVelocity", func() {
		v := physics.Vec{X: x, Y: y}
		p.bodyState.LinearVelocity = v
		if p.body != nil {
			p.body.SetLinearVelocity(v)
		}
	})
}

func (p *Polygon) SetAngularVelocity(w float64) *Polygon {
	return p.mutate("SetAngularVelocity", func() {
		p.bodyState.AngularVelocity = w
		if p.body != nil {
			p.body.SetAngularVelocity(w)
		}
	})
}

func (p *Polygon) SetLinearDamping(d float64) *Polygon {
	return p.mutate("SetLinearDamping", func() {
		p.bodyState.LinearDamping = d
		if p.body != nil {
			p.body.SetLinearDamping(d)
		}
	})
}

func (p *Polygon) SetAngularDamping(d float64) *Polygon {
	return p.mutate("SetAngularDamping", func() {
		p.bodyState.AngularDamping = d
		if p.body != nil {
			p.body.SetAngularDamping(d)
		}
	})
}

func (p *Polygon) SetGravityScale(s float64) *Polygon {
	return p.mutate("SetGravityScale", func() {
		p.bodyState.GravityScale = s
		if p.body != nil {
			p.body.SetGravityScale(s)
		}
	})
}

func (p *Polygon) SetBullet(on bool) *Polygon {
	return p.mutate("SetBullet", func() {
		p.bodyState.Bullet = on
		if p.body != nil {
			p.body.SetBullet(on)
		}
	})
}

func (p *Polygon) SetFixedRotation(on bool) *Polygon {
	return p.mutate("SetFixedRotation", func() {
		p.bodyState.FixedRotation = on
		if p.body != nil {
			p.body.SetFixedRotation(on)
		}
	})
}

func (p *Polygon) SetAllowSleep(on bool) *Polygon {
	return p.mutate("SetAllowSleep", func() {
		p.bodyState.AllowSleep = on
		if p.body != nil {
			p.body.SetSleepingAllowed(on)
		}
	})
}

func (p *Polygon) SetActive(on bool) *Polygon {
	return p.mutate("SetActive", func() {
		p.bodyState.Active = on
		if p.body != nil {
			p.body.SetActive(on)
		}
	})
}

func (p *Polygon) SetAwake(on bool) *Polygon {
	return p.mutate("SetAwake", func() {
		p.bodyState.Awake = on
		if p.body != nil {
			p.body.SetAwake(on)
		}
	})
}

func (p *Polygon) SetDensity(d float64) *Polygon {
	return p.mutate("SetDensity", func() {
		p.fixture.Density = d
		p.eachFixture(func(f physics.Fixture) { f.SetDensity(d) })
	})
}

func (p *Polygon) SetFriction(v float64) *Polygon {
	return p.mutate("SetFriction", func() {
		p.fixture.Friction = v
		p.eachFixture(func(f physics.Fixture) { f.SetFriction(v) })
	})
}

func (p *Polygon) SetRestitution(r float64) *Polygon {
	return p.mutate("SetRestitution", func() {
		p.fixture.Restitution = r
		p.eachFixture(func(f physics.Fixture) { f.SetRestitution(r) })
	})
}

func (p *Polygon) SetCategoryBits(bits uint) *Polygon {
	return p.mutate("SetCategoryBits", func() {
		p.fixture.Filter.Category = bits
		p.eachFixture(func(f physics.Fixture) {
			flt := f.Filter()
			flt.Category = bits
			f.SetFilter(flt)
		})
	})
}

func (p *Polygon) SetMaskBits(bits uint) *Polygon {
	return p.mutate("SetMaskBits", func() {
		p.fixture.Filter.Mask = bits
		p.eachFixture(func(f physics.Fixture) {
			flt := f.Filter()
			flt.Mask = bits
			f.SetFilter(flt)
		})
	})
}

func (p *Polygon) SetGroupIndex(group uint) *Polygon {
	return p.mutate("SetGroupIndex", func() {
		p.fixture.Filter.Group = group
		p.eachFixture(func(f physics.Fixture) {
			flt := f.Filter()
			flt.Group = group
			f.SetFilter(flt)
		})
	})
}

func (p *Polygon) SetSensor(on bool) *Polygon {
	return p.mutate("SetSensor", func() {
		p.fixture.Sensor = on
		p.eachFixture(func(f physics.Fixture) { f.SetSensor(on) })
	})
}

func (p *Polygon) SetResetAngle(on bool) *Polygon {
	return p.mutate("SetResetAngle", func() {
		p.bodyState.ResetAngle = on
	})
}

func (p *Polygon) SetDraggable(on bool) *Polygon {
	return p.mutate("SetDraggable", func() {
		p.bodyState.Draggable = on
	})
}

func (p *Polygon) SetSurviveReset(on bool) *Polygon {
	return p.mutate("SetSurviveReset", func() {
		p.bodyState.SurviveReset = on
	})
}
