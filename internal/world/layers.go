package world

// Layer selects one scalar attribute of every cell, for renderers that map
// values to colors.
type Layer uint8

const (
	LayerElevation Layer = iota
	LayerTemperature
	LayerLand // 1 for land, 0 for ocean
	LayerPopulation
	LayerCivilization
)

// Layers lists every layer in display order.
var Layers = []Layer{LayerElevation, LayerTemperature, LayerLand, LayerPopulation, LayerCivilization}

// Layer returns the selected attribute of every cell in row-major order.
func (g *Grid) Layer(l Layer) []float64 {
	out := make([]float64, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].value(l)
	}
	return out
}

func (c *Cell) value(l Layer) float64 {
	switch l {
	case LayerTemperature:
		return c.Temperature
	case LayerLand:
		if c.Land {
			return 1
		}
		return 0
	case LayerPopulation:
		return c.Population
	case LayerCivilization:
		return c.Civilization
	default:
		return c.Elevation
	}
}

// LayerName returns a human-readable name for a layer.
func LayerName(l Layer) string {
	switch l {
	case LayerElevation:
		return "Elevation"
	case LayerTemperature:
		return "Temperature"
	case LayerLand:
		return "Land"
	case LayerPopulation:
		return "Population"
	case LayerCivilization:
		return "Civilization"
	default:
		return "Unknown"
	}
}
