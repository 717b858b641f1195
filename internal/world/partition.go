// Region partitioning: grows plate-like regions from random seeds until they
// cover the grid, then blends one random bias per region into elevation.
package world

import (
	"fmt"
	"math/rand"
)

// DefaultBlendWeight is the share of the region bias mixed into elevation.
const DefaultBlendWeight = 0.3

// Region is one plate produced by a partition pass.
type Region struct {
	ID    int
	Bias  float64    // Drawn once per region, 0.0 to 1.0
	Cells []HexCoord // Claimed cells, seed first
}

// Partition splits the grid into regionCount disjoint regions covering every
// cell and pulls each cell's elevation towards its region's bias:
//
//	next = elevation*(1-blendWeight) + bias*blendWeight
//
// All cells are committed together once every region has been blended.
// Repeated calls compound, since each uses the committed elevation as its base.
func Partition(g *Grid, rng *rand.Rand, regionCount int, blendWeight float64) ([]Region, error) {
	if regionCount < 1 || regionCount > g.Len() {
		return nil, fmt.Errorf("region count %d for %d cells: %w", regionCount, g.Len(), ErrInvalidParameter)
	}
	if blendWeight < 0 || blendWeight > 1 {
		return nil, fmt.Errorf("blend weight %.3f: %w", blendWeight, ErrInvalidParameter)
	}

	members := growRegions(g, rng, regionCount)

	regions := make([]Region, regionCount)
	for id, idx := range members {
		bias := rng.Float64()
		for _, i := range idx {
			c := &g.cells[i]
			c.stage(c.Elevation*(1-blendWeight) + bias*blendWeight)
		}
		regions[id] = Region{ID: id, Bias: bias, Cells: g.coords(idx)}
	}

	for i := range g.cells {
		g.cells[i].commit()
	}

	return regions, nil
}

// growRegions runs the simultaneous flood fill and returns the member
// indices of each region. owner is the single-writer claim table: a cell is
// claimed by whichever region reaches it first in sweep order.
func growRegions(g *Grid, rng *rand.Rand, regionCount int) [][]int {
	total := g.Len()
	owner := make([]int, total)
	for i := range owner {
		owner[i] = -1
	}

	members := make([][]int, regionCount)
	frontiers := make([][]int, regionCount)
	claimed := 0

	// Distinct seeds by rejection sampling.
	for id := 0; id < regionCount; id++ {
		seed := rng.Intn(total)
		for owner[seed] != -1 {
			seed = rng.Intn(total)
		}
		owner[seed] = id
		members[id] = append(members[id], seed)
		frontiers[id] = append(frontiers[id], seed)
		claimed++
	}

	for claimed < total {
		progressed := false
		for id := range frontiers {
			var next []int
			// Every frontier cell is exhausted after this visit.
			for _, i := range frontiers[id] {
				for _, n := range g.adj[i] {
					if owner[n] != -1 {
						continue
					}
					owner[n] = id
					members[id] = append(members[id], n)
					next = append(next, n)
					claimed++
					progressed = true
				}
			}
			frontiers[id] = next
		}
		if !progressed {
			// The offset grid is connected, so this only happens on a topology bug.
			panic(fmt.Sprintf("world: region growth stalled at %d/%d cells", claimed, total))
		}
	}

	return members
}
