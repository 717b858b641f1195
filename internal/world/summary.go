package world

// Summary holds aggregate statistics of a generated world.
type Summary struct {
	Cells       int
	LandCells   int
	CoastCells  int // Land cells with at least one ocean neighbor
	Settlements map[SettlementSize]int

	// Means of each layer over all cells.
	Means map[Layer]float64
}

// LandFraction returns the share of cells above sea level.
func (s Summary) LandFraction() float64 {
	if s.Cells == 0 {
		return 0
	}
	return float64(s.LandCells) / float64(s.Cells)
}

// Summarize computes aggregate statistics for w.
func Summarize(w *World) Summary {
	g := w.Grid
	s := Summary{
		Cells:       g.Len(),
		Settlements: make(map[SettlementSize]int),
		Means:       make(map[Layer]float64),
	}

	for i := range g.cells {
		c := &g.cells[i]
		if c.Land {
			s.LandCells++
			if g.coastal(i) {
				s.CoastCells++
			}
		}
		for _, l := range Layers {
			s.Means[l] += c.value(l)
		}
	}
	for _, l := range Layers {
		s.Means[l] /= float64(s.Cells)
	}

	for _, st := range w.Settlements {
		s.Settlements[st.Size]++
	}
	return s
}
