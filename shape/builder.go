package shape

import (
	"fmt"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/physics"
)

// Descriptor is a convex polygon in physics units, waiting to become a
// fixture. It is consumed by Assemble.
type Descriptor struct {
	verts    []physics.Vec
	released bool
}

func (d *Descriptor) Verts() []physics.Vec {
	if d == nil {
		return nil
	}
	return d.verts
}

func (d *Descriptor) Len() int {
	if d == nil {
		return 0
	}
	return len(d.verts)
}

// Release drops the vertex data once the physics engine has copied it.
func (d *Descriptor) Release() {
	if d == nil {
		return
	}
	d.verts = nil
	d.released = true
}

func (d *Descriptor) Released() bool {
	return d == nil || d.released
}

// Build turns every sub-polygon into a descriptor, dividing coordinates by
// ratio. descriptors[i] always corresponds to vs[i]. On error no descriptors
// are returned.
func Build(vs VertexSet, ratio float64) ([]*Descriptor, error) {
	if ratio <= 0 {
		return nil, fmt.Errorf("shape: build with ratio %v: %w", ratio, ErrInvalidRatio)
	}

	descs := make([]*Descriptor, 0, len(vs))
	for i, sp := range vs {
		n := len(sp)
		if n < MinVertices || n > MaxVertices {
			return nil, fmt.Errorf("shape: build polygon %d with %d vertices: %w", i, n, ErrInvalidPolygon)
		}
		verts := make([]physics.Vec, n)
		for j, v := range sp {
			verts[j] = physics.Vec{X: common.ToPhysics(v.X, ratio), Y: common.ToPhysics(v.Y, ratio)}
		}
		descs = append(descs, &Descriptor{verts: verts})
	}
	return descs, nil
}

func releaseAll(descs []*Descriptor) {
	for _, d := range descs {
		d.Release()
	}
}
