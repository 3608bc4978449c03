package main

import (
	"fmt"
	"log"

	"github.com/milk9111/polybody/common"
	"github.com/milk9111/polybody/physics"
	"github.com/milk9111/polybody/prefabs"
	"github.com/milk9111/polybody/shape"
)

type simConfig struct {
	prefab string
	frames int
	dt     float64
	every  int
	sleep  float64
	logger *log.Logger
}

type simResult struct {
	names  []string
	polys  []*shape.Polygon
	space  *physics.Space
	frames int
}

// runOnce loads the prefab, creates every body, steps the space and tears
// everything down again.
func runOnce(cfg simConfig) error {
	res, err := simulate(cfg)
	if err != nil {
		return err
	}
	return res.destroy()
}

func simulate(cfg simConfig) (*simResult, error) {
	set, err := prefabs.LoadPolygonSet(cfg.prefab)
	if err != nil {
		return nil, err
	}

	space := physics.NewSpace(physics.WithSleeping(cfg.sleep), physics.WithSpaceLogger(cfg.logger))
	polys, err := set.BuildAll(space, shape.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}

	res := &simResult{polys: polys, space: space}
	for i, p := range polys {
		name := set.Polygons[i].Name
		res.names = append(res.names, name)
		if _, err := p.Create(); err != nil {
			_ = res.destroy()
			return nil, fmt.Errorf("polysim: create %s: %w", name, err)
		}
	}
	cfg.logger.Printf("polysim: created %d bodies from %s", space.BodyCount(), cfg.prefab)

	for frame := 1; frame <= cfg.frames; frame++ {
		space.Step(cfg.dt)
		res.frames = frame
		if cfg.every > 0 && frame%cfg.every == 0 {
			res.report(cfg.logger)
		}
	}
	return res, nil
}

func (r *simResult) report(logger *log.Logger) {
	for i, p := range r.polys {
		pos := p.Position()
		x, y := common.ToDesign(pos.X, p.Ratio()), common.ToDesign(pos.Y, p.Ratio())
		logger.Printf("polysim: frame %d %s pos=(%.1f, %.1f) angle=%.3f awake=%t", r.frames, r.names[i], x, y, p.Angle(), p.Awake())
	}
}

func (r *simResult) destroy() error {
	var first error
	for _, p := range r.polys {
		if p.State() == shape.Destroyed {
			continue
		}
		if err := p.Destroy(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
