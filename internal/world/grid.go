package world

import (
	"fmt"
	"slices"
)

// Grid holds the complete hex grid state: a dense row-major cell arena plus
// precomputed adjacency expressed as arena indices.
type Grid struct {
	Width  int
	Height int

	cells []Cell
	adj   [][]int // Direct neighbors, by index
	ext   [][]int // Neighbors of neighbors, by index
}

// NewGrid creates a grid of width columns and height rows with zeroed cells.
// The grid is never resized afterwards.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d: %w", width, height, ErrInvalidParameter)
	}

	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
		adj:    make([][]int, width*height),
		ext:    make([][]int, width*height),
	}

	for i := range g.cells {
		g.cells[i].Coord = g.coord(i)
	}

	for i := range g.cells {
		coord := g.cells[i].Coord
		for _, nc := range coord.adjacent() {
			if g.InBounds(nc) {
				g.adj[i] = append(g.adj[i], g.index(nc))
			}
		}
	}

	// Second pass once every direct list exists.
	for i := range g.cells {
		seen := make(map[int]bool)
		for _, n := range g.adj[i] {
			for _, nn := range g.adj[n] {
				if !seen[nn] {
					seen[nn] = true
					g.ext[i] = append(g.ext[i], nn)
				}
			}
		}
		slices.Sort(g.ext[i])
	}

	return g, nil
}

// InBounds returns true if the coordinate lies inside the grid.
func (g *Grid) InBounds(c HexCoord) bool {
	return c.Col >= 0 && c.Col < g.Width && c.Row >= 0 && c.Row < g.Height
}

// Get returns a copy of the cell at the given coordinate.
func (g *Grid) Get(c HexCoord) (Cell, error) {
	if !g.InBounds(c) {
		return Cell{}, fmt.Errorf("get %s in %dx%d grid: %w", c, g.Width, g.Height, ErrOutOfBounds)
	}
	return g.cells[g.index(c)].clone(), nil
}

// Neighbors returns the in-bounds cells adjacent to c: six in the interior,
// fewer along edges, none on a 1x1 grid.
func (g *Grid) Neighbors(c HexCoord) []HexCoord {
	return g.coords(g.adj[g.mustIndex(c)])
}

// ExtendedNeighbors returns every cell reachable in exactly two hops from c,
// deduplicated. It includes c itself whenever c has any neighbor.
func (g *Grid) ExtendedNeighbors(c HexCoord) []HexCoord {
	return g.coords(g.ext[g.mustIndex(c)])
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns a copy of every cell in row-major order. Changes to the
// result do not reach the grid.
func (g *Grid) Cells() []Cell {
	return cloneCells(g.cells)
}

// Clone returns a deep copy of the grid. Adjacency is shared since it never
// changes after construction.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = cloneCells(g.cells)
	return &c
}

func cloneCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	for i := range cells {
		out[i] = cells[i].clone()
	}
	return out
}

// String returns a summary of the grid.
func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d, cells=%d)", g.Width, g.Height, g.Len())
}

func (g *Grid) index(c HexCoord) int {
	return c.Row*g.Width + c.Col
}

func (g *Grid) coord(i int) HexCoord {
	return HexCoord{Col: i % g.Width, Row: i / g.Width}
}

// mustIndex is the assertion path for internal lookups.
func (g *Grid) mustIndex(c HexCoord) int {
	if !g.InBounds(c) {
		panic(fmt.Errorf("index %s in %dx%d grid: %w", c, g.Width, g.Height, ErrOutOfBounds))
	}
	return g.index(c)
}

func (g *Grid) coords(idx []int) []HexCoord {
	out := make([]HexCoord, len(idx))
	for i, n := range idx {
		out[i] = g.cells[n].Coord
	}
	return out
}
