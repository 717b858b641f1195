// Relief smoothing: diffuses elevation over each cell's two-hop neighborhood
// and sharpens the result with an easing curve.
package world

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Share of the neighborhood average in the smoothing blend; the cell keeps
// the remaining 0.3.
const smoothNeighborWeight = 0.7

// Easing selects the curve applied after each smoothing blend. Both push
// values away from 0.5 and map [0,1] into [0,1] with 0.5 as a fixed point.
type Easing uint8

const (
	EaseQuadratic Easing = iota // 2x² below 0.5, -2(x-1)²+1 above
	EaseRational                // y/(2√(y²+0.01)) + 0.5 with y = x/2 - 0.25
)

// Apply evaluates the easing curve at x.
func (e Easing) Apply(x float64) float64 {
	switch e {
	case EaseRational:
		y := x/2 - 0.25
		return y/(2*math.Sqrt(y*y+0.01)) + 0.5
	default:
		if x <= 0.5 {
			return 2 * x * x
		}
		return -2*(x-1)*(x-1) + 1
	}
}

// String returns the easing name.
func (e Easing) String() string {
	switch e {
	case EaseQuadratic:
		return "quadratic"
	case EaseRational:
		return "rational"
	default:
		return "unknown"
	}
}

// Smooth runs the given number of smoothing passes. Each pass computes every
// cell's next elevation from committed values only, waits for all of them,
// and then commits, so the result does not depend on visiting order.
// The compute phase is split across workers goroutines (GOMAXPROCS if <= 0).
func Smooth(g *Grid, passes int, easing Easing, workers int) error {
	if passes < 1 {
		return fmt.Errorf("smoothing passes %d: %w", passes, ErrInvalidParameter)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	for p := 0; p < passes; p++ {
		if err := computeParallel(g, easing, workers); err != nil {
			return fmt.Errorf("smoothing pass %d: %w", p, err)
		}
		// Barrier passed: every next value is staged.
		for i := range g.cells {
			g.cells[i].commit()
		}
	}
	return nil
}

// computeParallel stages next elevations over disjoint index chunks.
func computeParallel(g *Grid, easing Easing, workers int) error {
	total := g.Len()
	chunk := total/workers + 1

	var eg errgroup.Group
	eg.SetLimit(workers)
	for start := 0; start < total; start += chunk {
		end := min(start+chunk, total)
		eg.Go(func() error {
			for i := start; i < end; i++ {
				stageSmoothed(g, i, easing)
			}
			return nil
		})
	}
	return eg.Wait()
}

// smoothPass runs one full pass visiting cells in the given order. Used to
// check that the order does not leak into the result.
func smoothPass(g *Grid, easing Easing, order []int) {
	for _, i := range order {
		stageSmoothed(g, i, easing)
	}
	for i := range g.cells {
		g.cells[i].commit()
	}
}

// stageSmoothed writes cell i's next elevation. Reads only committed values.
func stageSmoothed(g *Grid, i int, easing Easing) {
	c := &g.cells[i]
	ext := g.ext[i]
	if len(ext) == 0 {
		c.stage(c.Elevation)
		return
	}

	sum := 0.0
	for _, n := range ext {
		sum += g.cells[n].Elevation
	}
	avg := sum / float64(len(ext))

	// Same as self*0.3 + avg*0.7, written so a flat field stays exactly flat.
	blended := c.Elevation + smoothNeighborWeight*(avg-c.Elevation)
	c.stage(clamp(easing.Apply(blended), 0, 1))
}
