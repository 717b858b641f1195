// Climate derivation: temperature, land mask, population potential, and
// civilization score, computed from committed elevation in that order.
package world

import "fmt"

// ClimateConfig holds the constants of the derived-attribute formulas.
type ClimateConfig struct {
	SeaLevel      float64 // Cells strictly above are land (0.0–1.0)
	EquatorRow    float64 // Row with zero latitude
	LatitudeScale float64 // Distance from the equator that counts as latitude 1
}

// DefaultClimateConfig places the equator on the middle row of a grid with
// the given height, so the top and bottom rows sit near latitude 1.
func DefaultClimateConfig(height int) ClimateConfig {
	return ClimateConfig{
		SeaLevel:      0.4,
		EquatorRow:    float64(height-1) / 2,
		LatitudeScale: max(float64(height)/2, 1),
	}
}

// Validate checks the formula constants.
func (cc ClimateConfig) Validate() error {
	if cc.SeaLevel < 0 || cc.SeaLevel >= 1 {
		return fmt.Errorf("sea level %.3f: %w", cc.SeaLevel, ErrInvalidParameter)
	}
	if cc.LatitudeScale <= 0 {
		return fmt.Errorf("latitude scale %.3f: %w", cc.LatitudeScale, ErrInvalidParameter)
	}
	return nil
}

// DeriveClimate recomputes every derived attribute. Each stage covers the
// whole grid before the next starts, since later stages read neighbors'
// results from earlier ones.
func DeriveClimate(g *Grid, cc ClimateConfig) error {
	if err := cc.Validate(); err != nil {
		return err
	}
	DeriveTemperature(g, cc)
	DeriveLand(g, cc)
	DerivePopulation(g, cc)
	DeriveCivilization(g)
	return nil
}

// DeriveTemperature sets temperature = clamp(1 - e³ - lat², 0, 1).
func DeriveTemperature(g *Grid, cc ClimateConfig) {
	for i := range g.cells {
		c := &g.cells[i]
		c.Temperature = Temperature(c.Elevation, Latitude(c.Coord.Row, cc))
	}
}

// Temperature is the temperature formula for one elevation and latitude.
// Non-increasing in both.
func Temperature(elevation, latitude float64) float64 {
	e := elevation
	return clamp(1-e*e*e-latitude*latitude, 0, 1)
}

// Latitude returns the normalized distance of row from the equator.
func Latitude(row int, cc ClimateConfig) float64 {
	d := float64(row) - cc.EquatorRow
	if d < 0 {
		d = -d
	}
	return d / cc.LatitudeScale
}

// DeriveLand marks cells above sea level as land.
func DeriveLand(g *Grid, cc ClimateConfig) {
	for i := range g.cells {
		c := &g.cells[i]
		c.Land = c.Elevation > cc.SeaLevel
	}
}

// DerivePopulation sets population potential, highest just above sea level
// and zero on ocean.
func DerivePopulation(g *Grid, cc ClimateConfig) {
	coeff := 1 / (1 - cc.SeaLevel)
	for i := range g.cells {
		c := &g.cells[i]
		if !c.Land {
			c.Population = 0
			continue
		}
		c.Population = (1 - c.Elevation) * coeff
	}
}

// DeriveCivilization averages population potential over each land cell's
// two-hop neighborhood and boosts coastal cells.
func DeriveCivilization(g *Grid) {
	for i := range g.cells {
		c := &g.cells[i]
		if !c.Land {
			c.Civilization = 0
			continue
		}

		ext := g.ext[i]
		if len(ext) == 0 {
			c.Civilization = 0
			continue
		}
		total := 0.0
		for _, n := range ext {
			total += g.cells[n].Population
		}
		civ := total / float64(len(ext))

		if g.coastal(i) {
			civ = coastBoost(civ)
		}
		c.Civilization = civ
	}
}

// coastal reports whether any direct neighbor of cell i is ocean.
func (g *Grid) coastal(i int) bool {
	for _, n := range g.adj[i] {
		if !g.cells[n].Land {
			return true
		}
	}
	return false
}

// coastBoost is 1-(1-c)³: lifts mid-range scores, keeps 0 and 1 fixed.
func coastBoost(c float64) float64 {
	return 3*c - 3*c*c + c*c*c
}
