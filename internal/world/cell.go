package world

// Cell is a single tile on the grid. It holds its own coordinate and state
// only; neighbors are looked up through the owning Grid.
type Cell struct {
	Coord HexCoord `json:"coord"`

	// Committed elevation, 0.0 (abyss) to 1.0 (peak). Every formula reads this.
	Elevation float64 `json:"elevation"`

	// Scratch buffer for the pass in progress. Only commit() moves it into
	// Elevation.
	next float64

	// Derived during the climate stage.
	Temperature  float64 `json:"temperature"`  // 0.0 (frozen) to 1.0 (hot)
	Land         bool    `json:"land"`         // Above sea level
	Population   float64 `json:"population"`   // Population potential, 0 on ocean
	Civilization float64 `json:"civilization"` // Settlement suitability

	// Settlement on this cell, if any. Set at most once per run.
	SettlementID *uint64 `json:"settlement_id,omitempty"`
}

// HasSettlement reports whether a settlement was placed on the cell.
func (c *Cell) HasSettlement() bool {
	return c.SettlementID != nil
}

func (c *Cell) stage(v float64) {
	c.next = v
}

func (c *Cell) commit() {
	c.Elevation = c.next
}

// clone copies the cell, including the settlement ID it points to.
func (c Cell) clone() Cell {
	if c.SettlementID != nil {
		id := *c.SettlementID
		c.SettlementID = &id
	}
	return c
}
